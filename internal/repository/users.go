package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (g *Gateway) GetUser(ctx context.Context, id uint) *models.User {
	return first[models.User](g, ctx, "get_user", byID(id))
}

func (g *Gateway) GetUserByOpenID(ctx context.Context, openID string) *models.User {
	return first[models.User](g, ctx, "get_user_by_open_id", func(db *gorm.DB) *gorm.DB {
		return db.Where("open_id = ?", openID)
	})
}

// UpsertUser inserts the actor or refreshes the sign-in fields of an existing
// one. Role is only written on insert. Empty profile fields never overwrite
// stored values.
func (g *Gateway) UpsertUser(ctx context.Context, user *models.User) (*models.User, error) {
	db, err := g.writer(ctx)
	if err != nil {
		return nil, err
	}
	if user.LastSignedIn.IsZero() {
		user.LastSignedIn = time.Now().UTC()
	}

	columns := []string{"last_signed_in", "updated_at"}
	if user.Name != "" {
		columns = append(columns, "name")
	}
	if user.Email != "" {
		columns = append(columns, "email")
	}
	if user.LoginMethod != "" {
		columns = append(columns, "login_method")
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(user).Error
	if err != nil {
		return nil, writeErr("upsert user", err)
	}

	return reload[models.User](db, "upsert user", func(db *gorm.DB) *gorm.DB {
		return db.Where("open_id = ?", user.OpenID)
	})
}
