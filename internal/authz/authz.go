// Package authz is the authorization chain: capability levels and composable
// guards evaluated before an operation runs.
package authz

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
)

// Level is the minimum capability an operation requires.
type Level int

const (
	Public Level = iota
	Authenticated
	ProviderCapable
	Admin
)

func (l Level) String() string {
	switch l {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case ProviderCapable:
		return "provider"
	case Admin:
		return "admin"
	}
	return "unknown"
}

// ProfileReader returns the actor's stored profile, or nil when none exists.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID uint) *models.UserProfile
}

// Guard passes (nil) or denies with a typed error. actor is nil for anonymous
// callers.
type Guard func(ctx context.Context, actor *models.User) error

// Chain runs guards in order and stops at the first denial.
func Chain(guards ...Guard) Guard {
	return func(ctx context.Context, actor *models.User) error {
		for _, g := range guards {
			if err := g(ctx, actor); err != nil {
				return err
			}
		}
		return nil
	}
}

// RequireActor denies anonymous callers.
func RequireActor(_ context.Context, actor *models.User) error {
	if actor == nil {
		return apperrors.Unauthorized("please sign in")
	}
	return nil
}

type Gate struct {
	profiles ProfileReader
}

func NewGate(profiles ProfileReader) *Gate {
	return &Gate{profiles: profiles}
}

// RequireProfile allows actors whose profile type is one of allowed. The
// profile is read on every call so a type change applies immediately.
func (g *Gate) RequireProfile(allowed ...models.ProfileType) Guard {
	return func(ctx context.Context, actor *models.User) error {
		profile := g.profiles.GetProfile(ctx, actor.ID)
		if profile == nil {
			return apperrors.Forbidden("no profile for this account")
		}
		for _, t := range allowed {
			if profile.ProfileType == t {
				return nil
			}
		}
		return apperrors.Forbidden("insufficient permissions")
	}
}

// Require returns the guard chain for a capability level.
func (g *Gate) Require(level Level) Guard {
	switch level {
	case Authenticated:
		return RequireActor
	case ProviderCapable:
		return Chain(RequireActor, g.RequireProfile(models.ProfileProvider, models.ProfileAdmin))
	case Admin:
		return Chain(RequireActor, g.RequireProfile(models.ProfileAdmin))
	}
	return func(context.Context, *models.User) error { return nil }
}

// Check evaluates level for actor.
func (g *Gate) Check(ctx context.Context, level Level, actor *models.User) error {
	return g.Require(level)(ctx, actor)
}
