package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"saledash/internal/activity"
	"saledash/internal/auth"
)

// CreateLoginSignupHandler records a login/signup for the authenticated user.
func CreateLoginSignupHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input activity.SignupInput
		if err := c.BodyParser(&input); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}
		signup, err := activity.RecordSignup(db, logger, &input, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to create login/signup activity")
		}
		return created(c, "Login/signup activity created successfully", signup)
	}
}

// ListLoginSignupsHandler returns the user's login/signup records, newest first.
func ListLoginSignupsHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		signups, err := activity.ListLoginSignups(db, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch login/signup activities")
		}
		return ok(c, signups)
	}
}

// GetLoginSignupHandler returns a single login/signup record by ID.
func GetLoginSignupHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid id")
		}
		signup, err := activity.FindLoginSignup(db, id, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch login/signup activity")
		}
		return ok(c, signup)
	}
}

// DeleteLoginSignupHandler removes a login/signup record.
func DeleteLoginSignupHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid id")
		}
		if err := activity.DeleteLoginSignup(db, id, auth.CurrentUserID(c)); err != nil {
			return failFrom(c, logger, err, "Failed to delete login/signup activity")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Login/signup activity deleted successfully",
		})
	}
}
