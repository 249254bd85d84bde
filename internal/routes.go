// Package internal contains core application functionality
package internal

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"saledash/internal/auth"
	"saledash/internal/http"
)

// apiCORSConfig is the CORS configuration shared by all API endpoints.
var apiCORSConfig = cors.Config{
	AllowOrigins: "*",
	AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	AllowHeaders: "Origin, Content-Type, Accept, Authorization",
}

// MountRoutes registers all application routes on the fiber app.
func MountRoutes(app *fiber.App, db *gorm.DB, logger *slog.Logger) {
	app.Get("/health", http.HealthHandler(db, logger))

	api := app.Group("/api", cors.New(apiCORSConfig))
	authRequired := auth.Middleware(logger)

	// Auth
	authAPI := api.Group("/auth")
	authAPI.Post("/register", http.RegisterHandler(db, logger))
	authAPI.Post("/login", http.LoginHandler(db, logger))
	authAPI.Get("/me", authRequired, http.MeHandler(db, logger))

	// Website visits
	websiteVisits := api.Group("/website-visits", authRequired)
	websiteVisits.Post("/", http.CreateWebsiteVisitHandler(db, logger))
	websiteVisits.Get("/", http.ListWebsiteVisitsHandler(db, logger))
	websiteVisits.Get("/:id", http.GetWebsiteVisitHandler(db, logger))
	websiteVisits.Put("/:id", http.UpdateWebsiteVisitHandler(db, logger))
	websiteVisits.Delete("/:id", http.DeleteWebsiteVisitHandler(db, logger))

	// Store visits
	storeVisits := api.Group("/store-visits", authRequired)
	storeVisits.Post("/", http.CreateStoreVisitHandler(db, logger))
	storeVisits.Get("/", http.ListStoreVisitsHandler(db, logger))
	storeVisits.Get("/:id", http.GetStoreVisitHandler(db, logger))
	storeVisits.Put("/:id", http.UpdateStoreVisitHandler(db, logger))
	storeVisits.Delete("/:id", http.DeleteStoreVisitHandler(db, logger))

	// Login/signups
	loginSignups := api.Group("/login-signups", authRequired)
	loginSignups.Post("/", http.CreateLoginSignupHandler(db, logger))
	loginSignups.Get("/", http.ListLoginSignupsHandler(db, logger))
	loginSignups.Get("/:id", http.GetLoginSignupHandler(db, logger))
	loginSignups.Delete("/:id", http.DeleteLoginSignupHandler(db, logger))

	// Contact rollups (read-only; rows are maintained by ingestion)
	contactsAPI := api.Group("/contacts", authRequired)
	contactsAPI.Get("/", http.ListContactsHandler(db, logger))
	contactsAPI.Get("/:id", http.GetContactHandler(db, logger))

	// Flat interaction records
	emails := api.Group("/email-interactions", authRequired)
	emails.Post("/", http.CreateEmailInteractionHandler(db, logger))
	emails.Get("/", http.ListEmailInteractionsHandler(db, logger))

	calls := api.Group("/call-interactions", authRequired)
	calls.Post("/", http.CreateCallInteractionHandler(db, logger))
	calls.Get("/", http.ListCallInteractionsHandler(db, logger))

	newsletters := api.Group("/newsletter-blogs", authRequired)
	newsletters.Post("/", http.CreateNewsletterBlogHandler(db, logger))
	newsletters.Get("/", http.ListNewsletterBlogsHandler(db, logger))

	// Analytics
	analyticsAPI := api.Group("/analytics", authRequired)
	analyticsAPI.Get("/funnel", http.FunnelHandler(db, logger))
	analyticsAPI.Get("/engagement", http.EngagementHandler(db, logger))
	analyticsAPI.Get("/geographic", http.GeographicHandler(db, logger))
}
