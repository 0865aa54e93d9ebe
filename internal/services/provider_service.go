package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/lifecycle"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/notify"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/repository"
)

var (
	ErrProviderExists      = apperrors.BadRequest("already exists")
	ErrInvalidCategory     = apperrors.BadRequest("invalid category")
	ErrInvalidNeighborhood = apperrors.BadRequest("invalid neighborhood")
	ErrProviderNotFound    = apperrors.NotFound("provider not found")
)

// ProviderService owns the provider lifecycle: creation, owner patches, the
// approval workflow and the active/featured flags.
type ProviderService struct {
	repo     *repository.Gateway
	notifier notify.Sink
	machine  *lifecycle.Machine
	now      func() time.Time
}

func NewProviderService(repo *repository.Gateway, notifier notify.Sink) *ProviderService {
	return &ProviderService{
		repo:     repo,
		notifier: notifier,
		machine:  lifecycle.Default,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithMachine swaps the status machine, e.g. to allow resubmission.
func (s *ProviderService) WithMachine(m *lifecycle.Machine) *ProviderService {
	s.machine = m
	return s
}

// Create registers the actor's provider listing in pending status. Checks
// run in order and stop at the first failure.
func (s *ProviderService) Create(ctx context.Context, actor *models.User, req *dto.CreateProviderRequest) (*models.Provider, error) {
	if s.repo.GetProviderByOwner(ctx, actor.ID) != nil {
		return nil, ErrProviderExists
	}
	category := s.repo.GetCategory(ctx, req.CategoryID)
	if category == nil {
		return nil, ErrInvalidCategory
	}
	if s.repo.GetNeighborhood(ctx, req.NeighborhoodID) == nil {
		return nil, ErrInvalidNeighborhood
	}

	status, err := s.machine.Next(lifecycle.None, lifecycle.ActionSubmit)
	if err != nil {
		return nil, err
	}

	provider := &models.Provider{
		OwnerID:        actor.ID,
		Name:           req.Name,
		Phone:          req.Phone,
		CategoryID:     req.CategoryID,
		NeighborhoodID: req.NeighborhoodID,
		Description:    req.Description,
		IsActive:       true,
		Status:         status,
		IsFeatured:     false,
	}
	if err := s.repo.CreateProvider(ctx, provider); err != nil {
		return nil, err
	}

	slog.Info("provider created", "provider_id", provider.ID, "actor_id", actor.ID)

	n := notify.New(
		notify.KindProviderPending,
		"New provider awaiting approval",
		fmt.Sprintf("%s registered as %s. Open the admin panel to review.", provider.Name, category.Name),
		provider.ID,
	)
	if err := s.notifier.Notify(ctx, n); err != nil {
		slog.Warn("admin notification failed", "provider_id", provider.ID, "error", err)
	}

	return provider, nil
}

// Mine returns the actor's provider, or nil when they have none.
func (s *ProviderService) Mine(ctx context.Context, actor *models.User) *models.Provider {
	return s.repo.GetProviderByOwner(ctx, actor.ID)
}

// Update patches the actor's own provider. Status and approval fields are
// not reachable from here.
func (s *ProviderService) Update(ctx context.Context, actor *models.User, req *dto.UpdateProviderRequest) (*models.Provider, error) {
	provider := s.repo.GetProviderByOwner(ctx, actor.ID)
	if provider == nil {
		return nil, ErrProviderNotFound
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil && *req.CategoryID != provider.CategoryID {
		if s.repo.GetCategory(ctx, *req.CategoryID) == nil {
			return nil, ErrInvalidCategory
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.NeighborhoodID != nil && *req.NeighborhoodID != provider.NeighborhoodID {
		if s.repo.GetNeighborhood(ctx, *req.NeighborhoodID) == nil {
			return nil, ErrInvalidNeighborhood
		}
		updates["neighborhood_id"] = *req.NeighborhoodID
	}

	return s.repo.UpdateProvider(ctx, provider.ID, updates)
}

// ToggleActive flips isActive on the actor's own provider.
func (s *ProviderService) ToggleActive(ctx context.Context, actor *models.User) (*models.Provider, error) {
	provider := s.repo.GetProviderByOwner(ctx, actor.ID)
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	return s.repo.UpdateProvider(ctx, provider.ID, map[string]interface{}{"is_active": !provider.IsActive})
}

// AdminToggleActive flips isActive on any provider.
func (s *ProviderService) AdminToggleActive(ctx context.Context, id uint) (*models.Provider, error) {
	provider, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateProvider(ctx, id, map[string]interface{}{"is_active": !provider.IsActive})
}

// ListApproved returns approved providers, optionally narrowed by category
// and neighborhood. Inactive providers are included.
func (s *ProviderService) ListApproved(ctx context.Context, categoryID, neighborhoodID uint) []models.Provider {
	return s.repo.ListProviders(ctx, repository.ProviderFilter{
		Status:         models.StatusApproved,
		CategoryID:     categoryID,
		NeighborhoodID: neighborhoodID,
	})
}

func (s *ProviderService) Featured(ctx context.Context) []models.Provider {
	return s.repo.ListProviders(ctx, repository.ProviderFilter{
		Status:       models.StatusApproved,
		FeaturedOnly: true,
	})
}

func (s *ProviderService) Pending(ctx context.Context) []models.Provider {
	return s.repo.ListProviders(ctx, repository.ProviderFilter{Status: models.StatusPending})
}

func (s *ProviderService) GetByID(ctx context.Context, id uint) (*models.Provider, error) {
	provider := s.repo.GetProvider(ctx, id)
	if provider == nil {
		return nil, ErrProviderNotFound
	}
	return provider, nil
}

// Approve moves a provider to approved and stamps approvedAt with the time of
// this call, including on repeat approvals.
func (s *ProviderService) Approve(ctx context.Context, id uint) (*models.Provider, error) {
	provider, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := s.machine.Next(provider.Status, lifecycle.ActionApprove)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateProvider(ctx, id, map[string]interface{}{
		"status":      status,
		"approved_at": s.now(),
	})
	if err != nil {
		return nil, err
	}
	slog.Info("provider approved", "provider_id", id)
	return updated, nil
}

func (s *ProviderService) Reject(ctx context.Context, id uint, reason string) (*models.Provider, error) {
	provider, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := s.machine.Next(provider.Status, lifecycle.ActionReject)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateProvider(ctx, id, map[string]interface{}{
		"status":           status,
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("provider rejected", "provider_id", id)
	return updated, nil
}

func (s *ProviderService) ToggleFeatured(ctx context.Context, id uint) (*models.Provider, error) {
	provider, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateProvider(ctx, id, map[string]interface{}{"is_featured": !provider.IsFeatured})
}
