package handlers

import (
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/services"
	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves the public reference data.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(h.catalogService.Categories(c.UserContext()))
}

func (h *CatalogHandler) Neighborhoods(c *fiber.Ctx) error {
	return c.JSON(h.catalogService.Neighborhoods(c.UserContext()))
}
