package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/lifecycle"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/notify"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu   sync.Mutex
	sent []notify.Notification
	err  error
}

func (r *recordingSink) Notify(_ context.Context, n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.err
}

type fixture struct {
	repo         *repository.Gateway
	sink         *recordingSink
	auth         *AuthService
	providers    *ProviderService
	catalog      *CatalogService
	reviews      *ReviewService
	contacts     *ContactService
	category     *models.Category
	neighborhood *models.Neighborhood
}

func setup(t *testing.T) *fixture {
	t.Helper()
	repo := repository.New(dbtest.NewHandle(t))
	sink := &recordingSink{}
	f := &fixture{
		repo:      repo,
		sink:      sink,
		auth:      NewAuthService(repo, &config.Config{OwnerOpenID: "owner"}),
		providers: NewProviderService(repo, sink),
		catalog:   NewCatalogService(repo),
		reviews:   NewReviewService(repo),
		contacts:  NewContactService(repo),
	}

	ctx := context.Background()
	var err error
	f.category, err = f.catalog.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Eletricista", Synonyms: []string{"eletricista", "luz"}})
	require.NoError(t, err)
	f.neighborhood, err = f.catalog.CreateNeighborhood(ctx, &dto.CreateNeighborhoodRequest{Name: "Centro"})
	require.NoError(t, err)
	return f
}

func (f *fixture) actor(t *testing.T, openID string, profile models.ProfileType) *models.User {
	t.Helper()
	ctx := context.Background()
	user, err := f.auth.SignIn(ctx, Identity{OpenID: openID, Name: openID})
	require.NoError(t, err)
	_, err = f.repo.SetProfileType(ctx, user.ID, profile)
	require.NoError(t, err)
	return user
}

func (f *fixture) createRequest() *dto.CreateProviderRequest {
	return &dto.CreateProviderRequest{
		Name:           "Joana Eletricista",
		Phone:          "93999999999",
		CategoryID:     f.category.ID,
		NeighborhoodID: f.neighborhood.ID,
	}
}

func TestCreateProvider_InitialState(t *testing.T) {
	f := setup(t)
	actor := f.actor(t, "a", models.ProfileProvider)

	provider, err := f.providers.Create(context.Background(), actor, f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, provider.Status)
	assert.True(t, provider.IsActive)
	assert.False(t, provider.IsFeatured)
	assert.Nil(t, provider.ApprovedAt)
	assert.Equal(t, actor.ID, provider.OwnerID)

	require.Len(t, f.sink.sent, 1)
	assert.Equal(t, notify.KindProviderPending, f.sink.sent[0].Kind)
	assert.Equal(t, provider.ID, f.sink.sent[0].ProviderID)
	assert.Contains(t, f.sink.sent[0].Content, "Eletricista")
}

func TestCreateProvider_ValidationOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := f.actor(t, "owner-1", models.ProfileProvider)
	_, err := f.providers.Create(ctx, owner, f.createRequest())
	require.NoError(t, err)

	fresh := f.actor(t, "fresh", models.ProfileProvider)

	tests := []struct {
		name  string
		actor *models.User
		req   *dto.CreateProviderRequest
		want  error
	}{
		{"existing beats bad references", owner, &dto.CreateProviderRequest{Name: "Other", Phone: "93999999999", CategoryID: 999, NeighborhoodID: 999}, ErrProviderExists},
		{"category before neighborhood", fresh, &dto.CreateProviderRequest{Name: "Other", Phone: "93999999999", CategoryID: 999, NeighborhoodID: 999}, ErrInvalidCategory},
		{"neighborhood", fresh, &dto.CreateProviderRequest{Name: "Other", Phone: "93999999999", CategoryID: f.category.ID, NeighborhoodID: 999}, ErrInvalidNeighborhood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.providers.Create(ctx, tt.actor, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
		})
	}
}

func TestCreateProvider_SecondForSameOwnerIsBadRequest(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for _, id := range []string{"x", "y", "z"} {
		_, err := f.providers.Create(ctx, f.actor(t, id, models.ProfileProvider), f.createRequest())
		require.NoError(t, err)
	}
	actor := f.actor(t, "dup", models.ProfileProvider)
	_, err := f.providers.Create(ctx, actor, f.createRequest())
	require.NoError(t, err)

	_, err = f.providers.Create(ctx, actor, f.createRequest())
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
	assert.Len(t, f.repo.ListProviders(ctx, repository.ProviderFilter{OwnerID: actor.ID}), 1)
}

func TestCreateProvider_NotificationFailureIsIgnored(t *testing.T) {
	f := setup(t)
	f.sink.err = errors.New("sink down")

	provider, err := f.providers.Create(context.Background(), f.actor(t, "a", models.ProfileProvider), f.createRequest())
	require.NoError(t, err)
	assert.NotZero(t, provider.ID)
}

func TestApprove_IdempotentStatusRefreshesApprovedAt(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	provider, err := f.providers.Create(ctx, f.actor(t, "a", models.ProfileProvider), f.createRequest())
	require.NoError(t, err)

	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	f.providers.now = func() time.Time { return first }
	approved, err := f.providers.Approve(ctx, provider.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.True(t, first.Equal(*approved.ApprovedAt))

	f.providers.now = func() time.Time { return second }
	again, err := f.providers.Approve(ctx, provider.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, again.Status)
	assert.True(t, second.Equal(*again.ApprovedAt))
}

func TestReject_SetsReasonAndIsTerminal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	provider, err := f.providers.Create(ctx, f.actor(t, "a", models.ProfileProvider), f.createRequest())
	require.NoError(t, err)

	rejected, err := f.providers.Reject(ctx, provider.ID, "telefone inválido")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "telefone inválido", *rejected.RejectionReason)

	_, err = f.providers.Approve(ctx, provider.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))

	_, err = f.providers.Approve(ctx, 9999)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestReject_ResubmissionMachineAllowsApproveAfterReject(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.providers.WithMachine(lifecycle.NewMachine(
		lifecycle.Transition{From: models.StatusRejected, To: models.StatusApproved, Action: lifecycle.ActionApprove},
	))
	provider, err := f.providers.Create(ctx, f.actor(t, "a", models.ProfileProvider), f.createRequest())
	require.NoError(t, err)
	_, err = f.providers.Reject(ctx, provider.ID, "")
	require.NoError(t, err)

	approved, err := f.providers.Approve(ctx, provider.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
}

func TestListApproved_FiltersByStatusAndReferences(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	other, err := f.catalog.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Encanador"})
	require.NoError(t, err)

	approved, err := f.providers.Create(ctx, f.actor(t, "a", models.ProfileProvider), f.createRequest())
	require.NoError(t, err)
	_, err = f.providers.Approve(ctx, approved.ID)
	require.NoError(t, err)

	pending, err := f.providers.Create(ctx, f.actor(t, "b", models.ProfileProvider), f.createRequest())
	require.NoError(t, err)

	req := f.createRequest()
	req.CategoryID = other.ID
	otherApproved, err := f.providers.Create(ctx, f.actor(t, "c", models.ProfileProvider), req)
	require.NoError(t, err)
	_, err = f.providers.Approve(ctx, otherApproved.ID)
	require.NoError(t, err)

	_, err = f.providers.AdminToggleActive(ctx, approved.ID)
	require.NoError(t, err)

	byCategory := f.providers.ListApproved(ctx, f.category.ID, 0)
	require.Len(t, byCategory, 1)
	assert.Equal(t, approved.ID, byCategory[0].ID)
	assert.False(t, byCategory[0].IsActive, "inactive providers stay listed")
	for _, p := range byCategory {
		assert.NotEqual(t, pending.ID, p.ID)
	}

	assert.Len(t, f.providers.ListApproved(ctx, 0, 0), 2)
	assert.Len(t, f.providers.ListApproved(ctx, other.ID, f.neighborhood.ID), 1)
	assert.Empty(t, f.providers.ListApproved(ctx, other.ID, 999))

	assert.Len(t, f.providers.Pending(ctx), 1)
}

func TestFeatured_RequiresApproval(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	provider, err := f.providers.Create(ctx, f.actor(t, "a", models.ProfileProvider), f.createRequest())
	require.NoError(t, err)

	featured, err := f.providers.ToggleFeatured(ctx, provider.ID)
	require.NoError(t, err)
	assert.True(t, featured.IsFeatured)
	assert.Empty(t, f.providers.Featured(ctx))

	_, err = f.providers.Approve(ctx, provider.ID)
	require.NoError(t, err)
	assert.Len(t, f.providers.Featured(ctx), 1)

	unfeatured, err := f.providers.ToggleFeatured(ctx, provider.ID)
	require.NoError(t, err)
	assert.False(t, unfeatured.IsFeatured)
	assert.Equal(t, models.StatusApproved, unfeatured.Status)
}

func TestUpdateProvider_OwnerPatch(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	actor := f.actor(t, "a", models.ProfileProvider)

	_, err := f.providers.Update(ctx, actor, &dto.UpdateProviderRequest{})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	created, err := f.providers.Create(ctx, actor, f.createRequest())
	require.NoError(t, err)

	name := "Joana Reparos"
	desc := "Instalações residenciais"
	updated, err := f.providers.Update(ctx, actor, &dto.UpdateProviderRequest{Name: &name, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, desc, *updated.Description)
	assert.Equal(t, created.Phone, updated.Phone)
	assert.Equal(t, models.StatusPending, updated.Status)

	bad := uint(999)
	_, err = f.providers.Update(ctx, actor, &dto.UpdateProviderRequest{CategoryID: &bad})
	assert.ErrorIs(t, err, ErrInvalidCategory)
	_, err = f.providers.Update(ctx, actor, &dto.UpdateProviderRequest{NeighborhoodID: &bad})
	assert.ErrorIs(t, err, ErrInvalidNeighborhood)

	unchanged, err := f.providers.Update(ctx, actor, &dto.UpdateProviderRequest{})
	require.NoError(t, err)
	assert.Equal(t, name, unchanged.Name)
}

func TestToggleActive_OwnerFlipsOwnProvider(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	actor := f.actor(t, "a", models.ProfileProvider)

	_, err := f.providers.ToggleActive(ctx, actor)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	_, err = f.providers.Create(ctx, actor, f.createRequest())
	require.NoError(t, err)

	off, err := f.providers.ToggleActive(ctx, actor)
	require.NoError(t, err)
	assert.False(t, off.IsActive)
	on, err := f.providers.ToggleActive(ctx, actor)
	require.NoError(t, err)
	assert.True(t, on.IsActive)
	assert.Equal(t, models.StatusPending, on.Status)
}

func TestAuth_SignInAssignsRoleOnce(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	owner, err := f.auth.SignIn(ctx, Identity{OpenID: "owner"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, owner.Role)

	user, err := f.auth.SignIn(ctx, Identity{OpenID: "someone", Email: "s@example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	again, err := f.auth.SignIn(ctx, Identity{OpenID: "someone"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "s@example.com", again.Email)

	_, err = f.auth.SignIn(ctx, Identity{})
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthorized))
}

func TestAuth_ProfileLazyCreationAndTypeChanges(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	user, err := f.auth.SignIn(ctx, Identity{OpenID: "someone"})
	require.NoError(t, err)

	assert.Nil(t, f.repo.GetProfile(ctx, user.ID))
	profile, err := f.auth.GetProfile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, models.ProfileCustomer, profile.ProfileType)

	updated, err := f.auth.UpdateProfileType(ctx, user, models.ProfileProvider)
	require.NoError(t, err)
	assert.Equal(t, models.ProfileProvider, updated.ProfileType)

	_, err = f.auth.UpdateProfileType(ctx, user, models.ProfileAdmin)
	assert.ErrorIs(t, err, ErrAdminPromotion)

	_, err = f.auth.UpdateProfileType(ctx, user, "root")
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))

	owner, err := f.auth.SignIn(ctx, Identity{OpenID: "owner"})
	require.NoError(t, err)
	adminProfile, err := f.auth.UpdateProfileType(ctx, owner, models.ProfileAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.ProfileAdmin, adminProfile.ProfileType)
}

func TestReviews_AverageRating(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	provider, err := f.providers.Create(ctx, f.actor(t, "a", models.ProfileProvider), f.createRequest())
	require.NoError(t, err)
	reviewer := f.actor(t, "r", models.ProfileCustomer)

	rating := f.reviews.Rating(ctx, provider.ID)
	assert.Equal(t, 0.0, rating.Average)
	assert.Equal(t, 0, rating.Count)

	for _, r := range []int{5, 3, 4} {
		_, err := f.reviews.Create(ctx, reviewer, &dto.CreateReviewRequest{ProviderID: provider.ID, Rating: r})
		require.NoError(t, err)
	}

	rating = f.reviews.Rating(ctx, provider.ID)
	assert.Equal(t, 4.0, rating.Average)
	assert.Equal(t, 3, rating.Count)
	assert.Len(t, f.reviews.ListByProvider(ctx, provider.ID), 3)

	_, err = f.reviews.Create(ctx, reviewer, &dto.CreateReviewRequest{ProviderID: 999, Rating: 5})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestContacts_AnonymousLogAndAccess(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := f.actor(t, "a", models.ProfileProvider)
	provider, err := f.providers.Create(ctx, owner, f.createRequest())
	require.NoError(t, err)

	before, err := f.contacts.ProviderContacts(ctx, owner, provider.ID)
	require.NoError(t, err)

	anon, err := f.contacts.Log(ctx, nil, &dto.LogContactRequest{ProviderID: provider.ID})
	require.NoError(t, err)
	assert.Nil(t, anon.UserID)
	assert.Equal(t, models.DefaultContactMethod, anon.ContactMethod)

	after, err := f.contacts.ProviderContacts(ctx, owner, provider.ID)
	require.NoError(t, err)
	assert.Equal(t, before.Count+1, after.Count)

	visitor := f.actor(t, "v", models.ProfileProvider)
	_, err = f.contacts.ProviderContacts(ctx, visitor, provider.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeForbidden))

	admin := f.actor(t, "adm", models.ProfileAdmin)
	viaAdmin, err := f.contacts.ProviderContacts(ctx, admin, provider.ID)
	require.NoError(t, err)
	assert.Equal(t, after.Count, viaAdmin.Count)

	_, err = f.contacts.Log(ctx, visitor, &dto.LogContactRequest{ProviderID: 999})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestCatalog_AdminManagement(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.catalog.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Eletricista"})
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))

	icon := "zap"
	updated, err := f.catalog.UpdateCategory(ctx, f.category.ID, &dto.UpdateCategoryRequest{Icon: &icon, Synonyms: []string{"eletrica"}})
	require.NoError(t, err)
	require.NotNil(t, updated.Icon)
	assert.Equal(t, "zap", *updated.Icon)
	assert.JSONEq(t, `["eletrica"]`, string(updated.Synonyms))

	_, err = f.catalog.UpdateCategory(ctx, 999, &dto.UpdateCategoryRequest{Icon: &icon})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))

	require.NoError(t, f.catalog.DeleteNeighborhood(ctx, f.neighborhood.ID))
	assert.Empty(t, f.catalog.Neighborhoods(ctx))
	assert.True(t, apperrors.Is(f.catalog.DeleteNeighborhood(ctx, f.neighborhood.ID), apperrors.CodeNotFound))
	assert.Len(t, f.catalog.Categories(ctx), 1)
}
