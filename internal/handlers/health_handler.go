package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/database"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	db *database.Handle
}

func NewHealthHandler(db *database.Handle) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check always answers 200 so browsing stays routable during storage outages;
// the db field reports reachability.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}
