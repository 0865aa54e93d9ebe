package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/repository"
)

var ErrAdminPromotion = apperrors.Forbidden("admin profile requires the admin role")

// Identity is what the session token asserts about the caller.
type Identity struct {
	OpenID      string
	Name        string
	Email       string
	LoginMethod string
}

type AuthService struct {
	repo        *repository.Gateway
	ownerOpenID string
}

func NewAuthService(repo *repository.Gateway, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, ownerOpenID: cfg.OwnerOpenID}
}

// SignIn resolves the actor for an identity, creating it on first sight. The
// owner identity gets the admin role; everyone else starts as a user.
func (s *AuthService) SignIn(ctx context.Context, id Identity) (*models.User, error) {
	if id.OpenID == "" {
		return nil, apperrors.Unauthorized("session has no subject")
	}
	role := models.RoleUser
	if s.ownerOpenID != "" && id.OpenID == s.ownerOpenID {
		role = models.RoleAdmin
	}
	return s.repo.UpsertUser(ctx, &models.User{
		OpenID:      id.OpenID,
		Name:        id.Name,
		Email:       id.Email,
		LoginMethod: id.LoginMethod,
		Role:        role,
	})
}

// GetProfile returns the actor's profile, creating a customer profile the
// first time it is read.
func (s *AuthService) GetProfile(ctx context.Context, actor *models.User) (*models.UserProfile, error) {
	if profile := s.repo.GetProfile(ctx, actor.ID); profile != nil {
		return profile, nil
	}
	return s.repo.EnsureProfile(ctx, actor.ID, models.ProfileCustomer)
}

func (s *AuthService) UpdateProfileType(ctx context.Context, actor *models.User, t models.ProfileType) (*models.UserProfile, error) {
	if !t.Valid() {
		return nil, apperrors.BadRequest("invalid profile type")
	}
	if t == models.ProfileAdmin && actor.Role != models.RoleAdmin {
		return nil, ErrAdminPromotion
	}
	return s.repo.SetProfileType(ctx, actor.ID, t)
}
