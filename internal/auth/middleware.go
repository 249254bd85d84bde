package auth

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the fiber locals key under which the middleware stores the
// authenticated user's ID.
const UserIDKey = "userId"

// Middleware returns a fiber handler that rejects requests without a valid
// bearer token and stores the token's user ID in the request locals.
func Middleware(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return unauthorized(c)
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c)
		}

		userID, err := ValidateToken(parts[1])
		if err != nil {
			logger.Debug("Rejected token", slog.Any("error", err))
			return unauthorized(c)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// CurrentUserID returns the authenticated user ID stored by Middleware.
func CurrentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(UserIDKey).(uint); ok {
		return id
	}
	return 0
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   "Unauthorized",
	})
}
