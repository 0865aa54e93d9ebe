package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"gorm.io/gorm"
)

func byProvider(providerID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("provider_id = ?", providerID).Order("id ASC")
	}
}

func (g *Gateway) ListReviews(ctx context.Context, providerID uint) []models.Review {
	return find[models.Review](g, ctx, "list_reviews", byProvider(providerID))
}

func (g *Gateway) CreateReview(ctx context.Context, review *models.Review) error {
	db, err := g.writer(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(review).Error; err != nil {
		return writeErr("create review", err)
	}
	return nil
}

func (g *Gateway) ListContacts(ctx context.Context, providerID uint) []models.ContactLog {
	return find[models.ContactLog](g, ctx, "list_contacts", byProvider(providerID))
}

func (g *Gateway) CreateContact(ctx context.Context, contact *models.ContactLog) error {
	db, err := g.writer(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(contact).Error; err != nil {
		return writeErr("log contact", err)
	}
	return nil
}
