// Package repository is the persistence gateway: every query against the
// directory tables goes through a Gateway.
//
// Read paths degrade to empty or absent results when the store cannot be
// reached so browsing keeps working during outages. Write paths report
// apperrors.CodeUnavailable instead. All writes are single-row.
package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/database"
	"gorm.io/gorm"
)

type Gateway struct {
	handle *database.Handle
}

func New(handle *database.Handle) *Gateway {
	return &Gateway{handle: handle}
}

func (g *Gateway) reader(ctx context.Context, op string) (*gorm.DB, bool) {
	db, err := g.handle.Get()
	if err != nil {
		slog.Warn("database unavailable for read", "op", op, "error", err)
		return nil, false
	}
	return db.WithContext(ctx), true
}

func (g *Gateway) writer(ctx context.Context) (*gorm.DB, error) {
	db, err := g.handle.Get()
	if err != nil {
		return nil, apperrors.Unavailable("database unavailable", err)
	}
	return db.WithContext(ctx), nil
}

func first[T any](g *Gateway, ctx context.Context, op string, query func(*gorm.DB) *gorm.DB) *T {
	db, ok := g.reader(ctx, op)
	if !ok {
		return nil
	}
	var row T
	if err := query(db).First(&row).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("read failed", "op", op, "error", err)
		}
		return nil
	}
	return &row
}

func find[T any](g *Gateway, ctx context.Context, op string, query func(*gorm.DB) *gorm.DB) []T {
	db, ok := g.reader(ctx, op)
	if !ok {
		return []T{}
	}
	rows := make([]T, 0)
	if err := query(db).Find(&rows).Error; err != nil {
		slog.Warn("read failed", "op", op, "error", err)
		return []T{}
	}
	return rows
}

// reload fetches a row just written. A failure here is reported like the
// write itself, since the caller expects the post-mutation entity.
func reload[T any](db *gorm.DB, op string, query func(*gorm.DB) *gorm.DB) (*T, error) {
	var row T
	if err := query(db).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("record not found")
		}
		return nil, writeErr(op, err)
	}
	return &row, nil
}

func writeErr(op string, err error) error {
	if isDuplicate(err) {
		return apperrors.BadRequest("already exists")
	}
	return apperrors.Unavailable(op+" failed", err)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func byID(id uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}
