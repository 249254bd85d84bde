package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"saledash/internal/analytics"
	"saledash/internal/auth"
)

// FunnelHandler returns the user's conversion funnel metrics.
func FunnelHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metrics, err := analytics.ComputeFunnel(db, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch funnel analytics")
		}
		return ok(c, metrics)
	}
}

// EngagementHandler returns the user's engagement metrics.
func EngagementHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metrics, err := analytics.ComputeEngagement(db, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch engagement analytics")
		}
		return ok(c, metrics)
	}
}

// GeographicHandler returns the user's geographic breakdown.
func GeographicHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metrics, err := analytics.ComputeGeographic(db, auth.CurrentUserID(c))
		if err != nil {
			return failFrom(c, logger, err, "Failed to fetch geographic analytics")
		}
		return ok(c, metrics)
	}
}
