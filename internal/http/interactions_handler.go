package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"saledash/internal/activity"
	"saledash/internal/auth"
)

// CreateEmailInteractionHandler stores an email interaction record. These are
// flat records with no rollup side effects.
func CreateEmailInteractionHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var record activity.EmailInteraction
		if err := c.BodyParser(&record); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}
		record.ID = 0
		record.UserID = auth.CurrentUserID(c)
		if err := activity.CreateEmailInteraction(db, &record); err != nil {
			return failFrom(c, logger, err, "Failed to create email interaction")
		}
		return created(c, "Email interaction created successfully", record)
	}
}

// ListEmailInteractionsHandler returns the user's email interactions with
// optional sentiment and thread filters.
func ListEmailInteractionsHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := activity.ListEmailInteractions(db, auth.CurrentUserID(c),
			c.Query("sentiment"), c.Query("thread"))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch email interactions")
		}
		return ok(c, records)
	}
}

// CreateCallInteractionHandler stores a call interaction record.
func CreateCallInteractionHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var record activity.CallInteraction
		if err := c.BodyParser(&record); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}
		record.ID = 0
		record.UserID = auth.CurrentUserID(c)
		if err := activity.CreateCallInteraction(db, &record); err != nil {
			return failFrom(c, logger, err, "Failed to create call interaction")
		}
		return created(c, "Call interaction created successfully", record)
	}
}

// ListCallInteractionsHandler returns the user's call interactions.
func ListCallInteractionsHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := activity.ListCallInteractions(db, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch call interactions")
		}
		return ok(c, records)
	}
}

// CreateNewsletterBlogHandler stores a newsletter subscription record.
func CreateNewsletterBlogHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var record activity.NewsletterBlog
		if err := c.BodyParser(&record); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}
		record.ID = 0
		record.UserID = auth.CurrentUserID(c)
		if err := activity.CreateNewsletterBlog(db, &record); err != nil {
			return failFrom(c, logger, err, "Failed to create newsletter subscription")
		}
		return created(c, "Newsletter subscription created successfully", record)
	}
}

// ListNewsletterBlogsHandler returns the user's newsletter subscriptions.
func ListNewsletterBlogsHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := activity.ListNewsletterBlogs(db, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch newsletter subscriptions")
		}
		return ok(c, records)
	}
}
