// Package http implements the JSON API handlers.
//
// Every response uses the same envelope: {"success": true, "data": ...} on
// success and {"success": false, "error": "..."} on failure. Failure messages
// are human-readable summaries; internal error detail is logged, never
// returned.
package http

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"saledash/internal/activity"
)

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
}

// failFrom maps a domain error to the right status code: validation errors
// are the caller's fault, missing rows are 404, anything else is a storage
// failure reported with the generic message.
func failFrom(c *fiber.Ctx, logger *slog.Logger, err error, genericMessage string) error {
	var validationErr *activity.ValidationError
	if errors.As(err, &validationErr) {
		return fail(c, fiber.StatusBadRequest, validationErr.Error())
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, fiber.StatusNotFound, "Not found")
	}
	logger.Error(genericMessage, slog.Any("error", err))
	return fail(c, fiber.StatusInternalServerError, genericMessage)
}

// idParam parses the :id route parameter.
func idParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
