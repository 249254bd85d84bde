package http

import (
	"errors"
	"log/slog"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"saledash/internal/auth"
	"saledash/internal/users"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type registerParams struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a new dashboard account and returns an access token.
func RegisterHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var params registerParams
		if err := c.BodyParser(&params); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}

		if params.Email == "" || params.Password == "" {
			return fail(c, fiber.StatusBadRequest, "Email and password are required")
		}
		if !emailPattern.MatchString(params.Email) {
			return fail(c, fiber.StatusBadRequest, "Invalid email address")
		}
		if len(params.Password) < 6 {
			return fail(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
		}

		user, err := users.Create(db, params.Name, params.Email, params.Password, users.RoleUser)
		if err != nil {
			if errors.Is(err, users.ErrUserExists) {
				return fail(c, fiber.StatusBadRequest, "Email is already registered")
			}
			logger.Error("Failed to create user", slog.Any("error", err))
			return fail(c, fiber.StatusInternalServerError, "Failed to register")
		}

		token, err := auth.CreateAccessToken(user)
		if err != nil {
			logger.Error("Failed to sign token", slog.Any("error", err))
			return fail(c, fiber.StatusInternalServerError, "Failed to register")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"token":   token,
			"user":    user,
		})
	}
}

// LoginHandler authenticates a user and returns an access token.
func LoginHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var params loginParams
		if err := c.BodyParser(&params); err != nil {
			return fail(c, fiber.StatusBadRequest, "Invalid request")
		}

		if params.Email == "" || params.Password == "" {
			return fail(c, fiber.StatusBadRequest, "Email and password are required")
		}

		user, err := users.Authenticate(db, params.Email, params.Password)
		if err != nil {
			if errors.Is(err, users.ErrInvalidCredentials) {
				return fail(c, fiber.StatusUnauthorized, "Invalid credentials")
			}
			logger.Error("Failed to authenticate user", slog.Any("error", err))
			return fail(c, fiber.StatusInternalServerError, "Failed to login")
		}

		token, err := auth.CreateAccessToken(user)
		if err != nil {
			logger.Error("Failed to sign token", slog.Any("error", err))
			return fail(c, fiber.StatusInternalServerError, "Failed to login")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}

// MeHandler returns the authenticated user's account.
func MeHandler(db *gorm.DB, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := users.FindByID(db, auth.CurrentUserID(c))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fail(c, fiber.StatusUnauthorized, "Unauthorized")
			}
			logger.Error("Failed to load user", slog.Any("error", err))
			return fail(c, fiber.StatusInternalServerError, "Failed to get user")
		}

		return c.JSON(fiber.Map{"success": true, "user": user})
	}
}
