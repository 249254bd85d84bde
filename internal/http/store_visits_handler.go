package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"saledash/internal/activity"
	"saledash/internal/auth"
)

// CreateStoreVisitHandler records a store visit for the authenticated user.
func CreateStoreVisitHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input activity.StoreVisitInput
		if err := c.BodyParser(&input); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}
		visit, err := activity.RecordStoreVisit(db, logger, &input, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to create store visit")
		}
		return created(c, "Store visit created successfully", visit)
	}
}

// ListStoreVisitsHandler returns the user's store visits, newest first.
func ListStoreVisitsHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		visits, err := activity.ListStoreVisits(db, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch store visits")
		}
		return ok(c, visits)
	}
}

// GetStoreVisitHandler returns a single store visit by ID.
func GetStoreVisitHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid id")
		}
		visit, err := activity.FindStoreVisit(db, id, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch store visit")
		}
		return ok(c, visit)
	}
}

// UpdateStoreVisitHandler replaces a store visit's fields.
func UpdateStoreVisitHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid id")
		}
		var input activity.StoreVisitInput
		if err := c.BodyParser(&input); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}
		visit, err := activity.UpdateStoreVisit(db, id, auth.CurrentUserID(c), &input)
		if err != nil {
			return failFrom(c, logger, err, "Failed to update store visit")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Store visit updated successfully",
			"data":    visit,
		})
	}
}

// DeleteStoreVisitHandler removes a store visit.
func DeleteStoreVisitHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid id")
		}
		if err := activity.DeleteStoreVisit(db, id, auth.CurrentUserID(c)); err != nil {
			return failFrom(c, logger, err, "Failed to delete store visit")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Store visit deleted successfully",
		})
	}
}
