package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

var statusByCode = map[apperrors.Code]int{
	apperrors.CodeBadRequest:   fiber.StatusBadRequest,
	apperrors.CodeUnauthorized: fiber.StatusUnauthorized,
	apperrors.CodeForbidden:    fiber.StatusForbidden,
	apperrors.CodeNotFound:     fiber.StatusNotFound,
	apperrors.CodeUnavailable:  fiber.StatusServiceUnavailable,
}

// ErrorHandler renders every error returned by a handler or middleware as
// the JSON error body with a status derived from its code.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		status := statusByCode[appErr.Code]
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		if appErr.Code == apperrors.CodeUnavailable {
			logRequestError(c, "storage unavailable", err)
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Error:   true,
			Code:    string(appErr.Code),
			Message: appErr.Message,
		})
	}

	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		logRequestError(c, "unhandled server error", err)
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

func logRequestError(c *fiber.Ctx, msg string, err error) {
	attrs := []any{
		"method", c.Method(),
		"procedure", c.Route().Path,
		"error", err.Error(),
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		attrs = append(attrs, "request_id", rid)
	}
	if actor := middleware.Actor(c); actor != nil {
		attrs = append(attrs, "actor_id", actor.ID)
	}
	slog.Error(msg, attrs...)
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.BadRequest("invalid " + name)
	}
	return uint(id), nil
}

func queryID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.BadRequest("invalid " + name)
	}
	return uint(id), nil
}

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return apperrors.BadRequest("Invalid request body")
	}
	return dto.Validate(req)
}
