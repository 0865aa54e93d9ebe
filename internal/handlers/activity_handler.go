package handlers

import (
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ActivityHandler covers reviews and contact logging.
type ActivityHandler struct {
	reviewService  *services.ReviewService
	contactService *services.ContactService
}

func NewActivityHandler(reviewService *services.ReviewService, contactService *services.ContactService) *ActivityHandler {
	return &ActivityHandler{reviewService: reviewService, contactService: contactService}
}

func (h *ActivityHandler) CreateReview(c *fiber.Ctx) error {
	var req dto.CreateReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	review, err := h.reviewService.Create(c.UserContext(), middleware.Actor(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (h *ActivityHandler) ListReviews(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return c.JSON(h.reviewService.ListByProvider(c.UserContext(), id))
}

func (h *ActivityHandler) AverageRating(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	return c.JSON(h.reviewService.Rating(c.UserContext(), id))
}

// LogContact records the contact for the signed-in actor, or anonymously.
func (h *ActivityHandler) LogContact(c *fiber.Ctx) error {
	var req dto.LogContactRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	contact, err := h.contactService.Log(c.UserContext(), middleware.Actor(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

func (h *ActivityHandler) ProviderContacts(c *fiber.Ctx) error {
	id, err := paramID(c, "providerId")
	if err != nil {
		return err
	}
	contacts, err := h.contactService.ProviderContacts(c.UserContext(), middleware.Actor(c), id)
	if err != nil {
		return err
	}
	return c.JSON(contacts)
}
