package handlers

import (
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/models"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	providerService *services.ProviderService
	catalogService  *services.CatalogService
}

func NewAdminHandler(providerService *services.ProviderService, catalogService *services.CatalogService) *AdminHandler {
	return &AdminHandler{providerService: providerService, catalogService: catalogService}
}

func (h *AdminHandler) PendingApprovals(c *fiber.Ctx) error {
	return c.JSON(h.providerService.Pending(c.UserContext()))
}

func (h *AdminHandler) Approve(c *fiber.Ctx) error {
	return h.mutateProvider(c, func(id uint) (*models.Provider, error) {
		return h.providerService.Approve(c.UserContext(), id)
	})
}

func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	var req dto.RejectProviderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return h.mutateProvider(c, func(id uint) (*models.Provider, error) {
		return h.providerService.Reject(c.UserContext(), id, req.Reason)
	})
}

func (h *AdminHandler) ToggleFeatured(c *fiber.Ctx) error {
	return h.mutateProvider(c, func(id uint) (*models.Provider, error) {
		return h.providerService.ToggleFeatured(c.UserContext(), id)
	})
}

func (h *AdminHandler) ToggleActive(c *fiber.Ctx) error {
	return h.mutateProvider(c, func(id uint) (*models.Provider, error) {
		return h.providerService.AdminToggleActive(c.UserContext(), id)
	})
}

func (h *AdminHandler) mutateProvider(c *fiber.Ctx, fn func(id uint) (*models.Provider, error)) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	provider, err := fn(id)
	if err != nil {
		return err
	}
	return c.JSON(provider)
}

func (h *AdminHandler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(h.catalogService.Categories(c.UserContext()))
}

func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	category, err := h.catalogService.CreateCategory(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCategoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	category, err := h.catalogService.UpdateCategory(c.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteCategory(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *AdminHandler) ListNeighborhoods(c *fiber.Ctx) error {
	return c.JSON(h.catalogService.Neighborhoods(c.UserContext()))
}

func (h *AdminHandler) CreateNeighborhood(c *fiber.Ctx) error {
	var req dto.CreateNeighborhoodRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	neighborhood, err := h.catalogService.CreateNeighborhood(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(neighborhood)
}

func (h *AdminHandler) DeleteNeighborhood(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalogService.DeleteNeighborhood(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
