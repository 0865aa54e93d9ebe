package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"gorm.io/gorm"
)

// ProviderFilter narrows ListProviders. Zero values mean "any"; set fields
// combine with AND.
type ProviderFilter struct {
	Status         models.ProviderStatus
	CategoryID     uint
	NeighborhoodID uint
	OwnerID        uint
	FeaturedOnly   bool
}

func (f ProviderFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.CategoryID != 0 {
		db = db.Where("category_id = ?", f.CategoryID)
	}
	if f.NeighborhoodID != 0 {
		db = db.Where("neighborhood_id = ?", f.NeighborhoodID)
	}
	if f.OwnerID != 0 {
		db = db.Where("owner_id = ?", f.OwnerID)
	}
	if f.FeaturedOnly {
		db = db.Where("is_featured = ?", true)
	}
	return db.Order("id ASC")
}

func (g *Gateway) ListProviders(ctx context.Context, filter ProviderFilter) []models.Provider {
	return find[models.Provider](g, ctx, "list_providers", filter.apply)
}

func (g *Gateway) GetProvider(ctx context.Context, id uint) *models.Provider {
	return first[models.Provider](g, ctx, "get_provider", byID(id))
}

func (g *Gateway) GetProviderByOwner(ctx context.Context, ownerID uint) *models.Provider {
	return first[models.Provider](g, ctx, "get_provider_by_owner", func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID).Order("id ASC")
	})
}

// CreateProvider inserts a provider row. The unique index on owner_id turns a
// concurrent duplicate into apperrors.CodeBadRequest.
func (g *Gateway) CreateProvider(ctx context.Context, provider *models.Provider) error {
	db, err := g.writer(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(provider).Error; err != nil {
		return writeErr("create provider", err)
	}
	return nil
}

// UpdateProvider applies column updates to one provider and returns the
// post-mutation row.
func (g *Gateway) UpdateProvider(ctx context.Context, id uint, updates map[string]interface{}) (*models.Provider, error) {
	db, err := g.writer(ctx)
	if err != nil {
		return nil, err
	}
	if err := updateByID(db, &models.Provider{}, id, updates, "update provider"); err != nil {
		return nil, err
	}
	return reload[models.Provider](db, "update provider", byID(id))
}
