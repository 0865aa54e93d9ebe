package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/aggregate"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/repository"
)

type ReviewService struct {
	repo *repository.Gateway
}

func NewReviewService(repo *repository.Gateway) *ReviewService {
	return &ReviewService{repo: repo}
}

// Create appends a review. Rating bounds are checked by request validation;
// repeat reviews by the same actor are accepted.
func (s *ReviewService) Create(ctx context.Context, actor *models.User, req *dto.CreateReviewRequest) (*models.Review, error) {
	if s.repo.GetProvider(ctx, req.ProviderID) == nil {
		return nil, ErrProviderNotFound
	}
	review := &models.Review{
		ProviderID: req.ProviderID,
		UserID:     actor.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByProvider(ctx context.Context, providerID uint) []models.Review {
	return s.repo.ListReviews(ctx, providerID)
}

func (s *ReviewService) Rating(ctx context.Context, providerID uint) *dto.RatingResponse {
	reviews := s.repo.ListReviews(ctx, providerID)
	return &dto.RatingResponse{
		ProviderID: providerID,
		Average:    aggregate.AverageRating(reviews),
		Count:      len(reviews),
	}
}

type ContactService struct {
	repo *repository.Gateway
}

func NewContactService(repo *repository.Gateway) *ContactService {
	return &ContactService{repo: repo}
}

// Log records a contact attempt. actor is nil for anonymous visitors.
func (s *ContactService) Log(ctx context.Context, actor *models.User, req *dto.LogContactRequest) (*models.ContactLog, error) {
	if s.repo.GetProvider(ctx, req.ProviderID) == nil {
		return nil, ErrProviderNotFound
	}
	method := req.ContactMethod
	if method == "" {
		method = models.DefaultContactMethod
	}
	contact := &models.ContactLog{ProviderID: req.ProviderID, ContactMethod: method}
	if actor != nil {
		id := actor.ID
		contact.UserID = &id
	}
	if err := s.repo.CreateContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// ProviderContacts lists contact attempts for a provider. Only the owner or an
// admin-profile actor may read them.
func (s *ContactService) ProviderContacts(ctx context.Context, actor *models.User, providerID uint) (*dto.ProviderContactsResponse, error) {
	provider := s.repo.GetProvider(ctx, providerID)
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	if provider.OwnerID != actor.ID {
		profile := s.repo.GetProfile(ctx, actor.ID)
		if profile == nil || profile.ProfileType != models.ProfileAdmin {
			return nil, apperrors.Forbidden("not your provider")
		}
	}
	contacts := s.repo.ListContacts(ctx, providerID)
	return &dto.ProviderContactsResponse{
		ProviderID: providerID,
		Count:      aggregate.ContactCount(contacts),
		Contacts:   contacts,
	}, nil
}
