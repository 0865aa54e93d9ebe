package services

import (
	"context"
	"encoding/json"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/repository"
	"gorm.io/datatypes"
)

// CatalogService manages the reference data providers point at.
type CatalogService struct {
	repo *repository.Gateway
}

func NewCatalogService(repo *repository.Gateway) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Categories(ctx context.Context) []models.Category {
	return s.repo.ListCategories(ctx)
}

func (s *CatalogService) Neighborhoods(ctx context.Context) []models.Neighborhood {
	return s.repo.ListNeighborhoods(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if req.Synonyms != nil {
		synonyms, err := encodeSynonyms(req.Synonyms)
		if err != nil {
			return nil, err
		}
		category.Synonyms = synonyms
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory patches the fields present in req.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.Synonyms != nil {
		synonyms, err := encodeSynonyms(req.Synonyms)
		if err != nil {
			return nil, err
		}
		updates["synonyms"] = synonyms
	}
	return s.repo.UpdateCategory(ctx, id, updates)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *CatalogService) CreateNeighborhood(ctx context.Context, req *dto.CreateNeighborhoodRequest) (*models.Neighborhood, error) {
	neighborhood := &models.Neighborhood{Name: req.Name}
	if err := s.repo.CreateNeighborhood(ctx, neighborhood); err != nil {
		return nil, err
	}
	return neighborhood, nil
}

func (s *CatalogService) DeleteNeighborhood(ctx context.Context, id uint) error {
	return s.repo.DeleteNeighborhood(ctx, id)
}

func encodeSynonyms(synonyms []string) (datatypes.JSON, error) {
	raw, err := json.Marshal(synonyms)
	if err != nil {
		return nil, apperrors.BadRequest("invalid synonyms")
	}
	return datatypes.JSON(raw), nil
}
