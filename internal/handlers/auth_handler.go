package handlers

import (
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Me returns the resolved actor, or null for anonymous callers.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(middleware.Actor(c))
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.authService.GetProfile(c.UserContext(), middleware.Actor(c))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

func (h *AuthHandler) UpdateProfileType(c *fiber.Ctx) error {
	var req dto.UpdateProfileTypeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	profile, err := h.authService.UpdateProfileType(c.UserContext(), middleware.Actor(c), models.ProfileType(req.ProfileType))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}
