package middleware

import (
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// OptionalJWT verifies the session token when one is sent. Anonymous or
// badly-signed requests continue without a token in Locals("user"); the
// capability middleware decides whether an actor is required.
func OptionalJWT(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Next()
		},
	})
}
