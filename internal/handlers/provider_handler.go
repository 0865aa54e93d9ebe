package handlers

import (
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ProviderHandler struct {
	providerService *services.ProviderService
}

func NewProviderHandler(providerService *services.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// List serves providers.list with optional category_id and neighborhood_id.
func (h *ProviderHandler) List(c *fiber.Ctx) error {
	categoryID, err := queryID(c, "category_id")
	if err != nil {
		return err
	}
	neighborhoodID, err := queryID(c, "neighborhood_id")
	if err != nil {
		return err
	}
	return c.JSON(h.providerService.ListApproved(c.UserContext(), categoryID, neighborhoodID))
}

func (h *ProviderHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	provider, err := h.providerService.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(provider)
}

func (h *ProviderHandler) Featured(c *fiber.Ctx) error {
	return c.JSON(h.providerService.Featured(c.UserContext()))
}

// Mine returns the caller's provider or null.
func (h *ProviderHandler) Mine(c *fiber.Ctx) error {
	return c.JSON(h.providerService.Mine(c.UserContext(), middleware.Actor(c)))
}

func (h *ProviderHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProviderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	provider, err := h.providerService.Create(c.UserContext(), middleware.Actor(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(provider)
}

func (h *ProviderHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProviderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	provider, err := h.providerService.Update(c.UserContext(), middleware.Actor(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(provider)
}

// ToggleStatus flips isActive on the caller's provider.
func (h *ProviderHandler) ToggleStatus(c *fiber.Ctx) error {
	provider, err := h.providerService.ToggleActive(c.UserContext(), middleware.Actor(c))
	if err != nil {
		return err
	}
	return c.JSON(provider)
}
