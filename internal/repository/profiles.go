package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func byUser(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// GetProfile reads the profile fresh from storage; nil when absent or the
// store is unreachable.
func (g *Gateway) GetProfile(ctx context.Context, userID uint) *models.UserProfile {
	return first[models.UserProfile](g, ctx, "get_profile", byUser(userID))
}

// EnsureProfile creates a profile of type t unless one exists, and returns the
// stored profile either way.
func (g *Gateway) EnsureProfile(ctx context.Context, userID uint, t models.ProfileType) (*models.UserProfile, error) {
	db, err := g.writer(ctx)
	if err != nil {
		return nil, err
	}
	profile := models.UserProfile{UserID: userID, ProfileType: t}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&profile).Error
	if err != nil {
		return nil, writeErr("ensure profile", err)
	}
	return reload[models.UserProfile](db, "ensure profile", byUser(userID))
}

// SetProfileType creates or updates the actor's profile type.
func (g *Gateway) SetProfileType(ctx context.Context, userID uint, t models.ProfileType) (*models.UserProfile, error) {
	db, err := g.writer(ctx)
	if err != nil {
		return nil, err
	}
	profile := models.UserProfile{UserID: userID, ProfileType: t}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"profile_type", "updated_at"}),
	}).Create(&profile).Error
	if err != nil {
		return nil, writeErr("set profile type", err)
	}
	return reload[models.UserProfile](db, "set profile type", byUser(userID))
}
