package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/authz"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers bundles the procedure surface wired into the route table.
type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Provider *handlers.ProviderHandler
	Catalog  *handlers.CatalogHandler
	Activity *handlers.ActivityHandler
	Admin    *handlers.AdminHandler
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	gate *authz.Gate,
	resolver middleware.ActorResolver,
	h Handlers,
) {
	api := app.Group("/api")

	if cfg.RateLimitPerMinute > 0 {
		api.Use(limiter.New(limiter.Config{
			Max:               cfg.RateLimitPerMinute,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}

	// Health (no session)
	api.Get("/health", h.Health.Check)

	// Session handling: a token is optional everywhere; the capability
	// middleware decides whether an actor is required.
	api.Use(middleware.OptionalJWT(cfg), middleware.ResolveActor(resolver))

	public := middleware.Capability(gate, authz.Public)
	authenticated := middleware.Capability(gate, authz.Authenticated)
	providerCapable := middleware.Capability(gate, authz.ProviderCapable)
	admin := middleware.Capability(gate, authz.Admin)

	// Public browsing
	api.Get("/auth/me", public, h.Auth.Me)
	providers := api.Group("/providers", public)
	providers.Get("/", h.Provider.List)
	providers.Get("/featured", h.Provider.Featured)
	providers.Get("/:id", h.Provider.GetByID)
	providers.Get("/:id/reviews", h.Activity.ListReviews)
	providers.Get("/:id/rating", h.Activity.AverageRating)

	data := api.Group("/data", public)
	data.Get("/categories", h.Catalog.Categories)
	data.Get("/neighborhoods", h.Catalog.Neighborhoods)

	// Contact logging accepts anonymous visitors
	api.Post("/contacts", public, h.Activity.LogContact)

	// Authenticated
	api.Get("/auth/profile", authenticated, h.Auth.GetProfile)
	api.Put("/auth/profile/type", authenticated, h.Auth.UpdateProfileType)
	api.Post("/reviews", authenticated, h.Activity.CreateReview)

	// Provider-capable
	api.Get("/contacts/:providerId", providerCapable, h.Activity.ProviderContacts)
	mine := api.Group("/my-provider", providerCapable)
	mine.Get("/", h.Provider.Mine)
	mine.Post("/", h.Provider.Create)
	mine.Patch("/", h.Provider.Update)
	mine.Post("/toggle-status", h.Provider.ToggleStatus)

	// Admin
	adm := api.Group("/admin", admin)
	adm.Get("/pending-approvals", h.Admin.PendingApprovals)
	adm.Post("/providers/:id/approve", h.Admin.Approve)
	adm.Post("/providers/:id/reject", h.Admin.Reject)
	adm.Post("/providers/:id/toggle-featured", h.Admin.ToggleFeatured)
	adm.Post("/providers/:id/toggle-active", h.Admin.ToggleActive)

	adm.Get("/categories", h.Admin.ListCategories)
	adm.Post("/categories", h.Admin.CreateCategory)
	adm.Put("/categories/:id", h.Admin.UpdateCategory)
	adm.Delete("/categories/:id", h.Admin.DeleteCategory)

	adm.Get("/neighborhoods", h.Admin.ListNeighborhoods)
	adm.Post("/neighborhoods", h.Admin.CreateNeighborhood)
	adm.Delete("/neighborhoods/:id", h.Admin.DeleteNeighborhood)
}
