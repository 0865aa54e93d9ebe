package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"gorm.io/gorm"
)

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

func (g *Gateway) ListCategories(ctx context.Context) []models.Category {
	return find[models.Category](g, ctx, "list_categories", orderByName)
}

func (g *Gateway) GetCategory(ctx context.Context, id uint) *models.Category {
	return first[models.Category](g, ctx, "get_category", byID(id))
}

func (g *Gateway) CreateCategory(ctx context.Context, category *models.Category) error {
	db, err := g.writer(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(category).Error; err != nil {
		return writeErr("create category", err)
	}
	return nil
}

// UpdateCategory applies column updates and returns the stored row.
func (g *Gateway) UpdateCategory(ctx context.Context, id uint, updates map[string]interface{}) (*models.Category, error) {
	db, err := g.writer(ctx)
	if err != nil {
		return nil, err
	}
	if err := updateByID(db, &models.Category{}, id, updates, "update category"); err != nil {
		return nil, err
	}
	return reload[models.Category](db, "update category", byID(id))
}

func (g *Gateway) DeleteCategory(ctx context.Context, id uint) error {
	return g.deleteByID(ctx, &models.Category{}, id, "category not found")
}

func (g *Gateway) ListNeighborhoods(ctx context.Context) []models.Neighborhood {
	return find[models.Neighborhood](g, ctx, "list_neighborhoods", orderByName)
}

func (g *Gateway) GetNeighborhood(ctx context.Context, id uint) *models.Neighborhood {
	return first[models.Neighborhood](g, ctx, "get_neighborhood", byID(id))
}

func (g *Gateway) CreateNeighborhood(ctx context.Context, neighborhood *models.Neighborhood) error {
	db, err := g.writer(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(neighborhood).Error; err != nil {
		return writeErr("create neighborhood", err)
	}
	return nil
}

func (g *Gateway) DeleteNeighborhood(ctx context.Context, id uint) error {
	return g.deleteByID(ctx, &models.Neighborhood{}, id, "neighborhood not found")
}

func (g *Gateway) deleteByID(ctx context.Context, model interface{}, id uint, notFound string) error {
	db, err := g.writer(ctx)
	if err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return writeErr("delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(notFound)
	}
	return nil
}

// updateByID is a single-row UPDATE; an empty update set only checks existence.
func updateByID(db *gorm.DB, model interface{}, id uint, updates map[string]interface{}, op string) error {
	if len(updates) == 0 {
		var count int64
		if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return writeErr(op, err)
		}
		if count == 0 {
			return apperrors.NotFound("record not found")
		}
		return nil
	}
	result := db.Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return writeErr(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("record not found")
	}
	return nil
}
