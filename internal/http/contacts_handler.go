package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"saledash/internal/auth"
	"saledash/internal/contacts"
)

// ListContactsHandler returns the user's contact rollups ordered by most
// recent activity.
func ListContactsHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := contacts.List(db, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch contacts")
		}
		return ok(c, result)
	}
}

// GetContactHandler returns a single contact rollup by ID.
func GetContactHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid id")
		}
		contact, err := contacts.FindByID(db, id, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch contact")
		}
		return ok(c, contact)
	}
}
