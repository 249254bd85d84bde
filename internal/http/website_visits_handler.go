package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"saledash/internal/activity"
	"saledash/internal/auth"
	"saledash/internal/geo"
)

// CreateWebsiteVisitHandler records a website visit for the authenticated
// user. When the payload carries no location and a GeoLite2 database is
// configured, the location is resolved from the visit's IP.
func CreateWebsiteVisitHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input activity.WebsiteVisitInput
		if err := c.BodyParser(&input); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}

		if input.Location == "" && input.IP != "" {
			input.Location = geo.LocationFromIP(input.IP)
		}

		visit, err := activity.RecordWebsiteVisit(db, logger, &input, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to create website visit")
		}
		return created(c, "Website visit created successfully", visit)
	}
}

// ListWebsiteVisitsHandler returns the user's website visits, newest first.
func ListWebsiteVisitsHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		visits, err := activity.ListWebsiteVisits(db, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch website visits")
		}
		return ok(c, visits)
	}
}

// GetWebsiteVisitHandler returns a single website visit by ID.
func GetWebsiteVisitHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid id")
		}
		visit, err := activity.FindWebsiteVisit(db, id, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch website visit")
		}
		return ok(c, visit)
	}
}

// UpdateWebsiteVisitHandler replaces a website visit's fields.
func UpdateWebsiteVisitHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid id")
		}
		var input activity.WebsiteVisitInput
		if err := c.BodyParser(&input); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}
		visit, err := activity.UpdateWebsiteVisit(db, id, auth.CurrentUserID(c), &input)
		if err != nil {
			return failFrom(c, logger, err, "Failed to update website visit")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Website visit updated successfully",
			"data":    visit,
		})
	}
}

// DeleteWebsiteVisitHandler removes a website visit.
func DeleteWebsiteVisitHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := idParam(c)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid id")
		}
		if err := activity.DeleteWebsiteVisit(db, id, auth.CurrentUserID(c)); err != nil {
			return failFrom(c, logger, err, "Failed to delete website visit")
		}
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Website visit deleted successfully",
		})
	}
}
