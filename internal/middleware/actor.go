package middleware

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/authz"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	actorKey      = "actor"
	actorErrorKey = "actor_error"
)

// ActorResolver maps a session identity to a stored actor.
type ActorResolver interface {
	SignIn(ctx context.Context, id services.Identity) (*models.User, error)
}

// ResolveActor turns the verified token in Locals("user") into an actor row.
// Requests without a token continue anonymously. When the store is
// unavailable the request also continues anonymously and the failure is kept
// for Capability, so public browsing still answers.
func ResolveActor(resolver ActorResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Next()
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Next()
		}

		actor, err := resolver.SignIn(c.UserContext(), IdentityFromClaims(claims))
		if apperrors.Is(err, apperrors.CodeUnavailable) {
			slog.Warn("actor resolution skipped, store unavailable", "path", c.Path(), "error", err)
			c.Locals(actorErrorKey, err)
			return c.Next()
		}
		if err != nil {
			return err
		}
		c.Locals(actorKey, actor)
		return c.Next()
	}
}

// IdentityFromClaims reads the subject and profile claims of a session token.
func IdentityFromClaims(claims jwt.MapClaims) services.Identity {
	sub, _ := claims.GetSubject()
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	method, _ := claims["login_method"].(string)
	return services.Identity{OpenID: sub, Name: name, Email: email, LoginMethod: method}
}

// Actor returns the resolved actor, or nil for anonymous requests.
func Actor(c *fiber.Ctx) *models.User {
	actor, _ := c.Locals(actorKey).(*models.User)
	return actor
}

// Capability runs the authorization chain for level before the handler. Any
// level above Public reports a deferred actor resolution failure instead of
// treating the caller as anonymous.
func Capability(gate *authz.Gate, level authz.Level) fiber.Handler {
	guard := gate.Require(level)
	return func(c *fiber.Ctx) error {
		if err, ok := c.Locals(actorErrorKey).(error); ok && level != authz.Public {
			return err
		}
		if err := guard(c.UserContext(), Actor(c)); err != nil {
			return err
		}
		return c.Next()
	}
}
