package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"saledash/internal/config"
	"saledash/internal/database"
	"saledash/internal/geo"
	"saledash/internal/logging"
)

// Application bundles the configured server with its dependencies.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	DBManager *database.Manager
	Fiber     *fiber.App
}

// NewApp creates a new application instance with default settings.
func NewApp() (*Application, error) {
	cfg := config.GetConfig()
	logger := logging.NewLogger(cfg)

	dbManager := database.NewManager(cfg, logger)
	if err := dbManager.Connect(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	geo.InitLogger(logger)

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		DisableStartupMessage: cfg.IsProduction(),
	})
	app.Use(recover.New())

	MountRoutes(app, dbManager.GetConnection(), logger)

	return &Application{
		Config:    cfg,
		Logger:    logger,
		DBManager: dbManager,
		Fiber:     app,
	}, nil
}

// Start begins listening on the configured port; it blocks until shutdown.
func (a *Application) Start() error {
	a.Logger.Info("Starting server", slog.String("port", a.Config.AppPort))
	return a.Fiber.Listen(":" + a.Config.AppPort)
}

// Shutdown stops the server and closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	if err := a.Fiber.ShutdownWithContext(ctx); err != nil {
		return err
	}
	geo.Close()
	return a.DBManager.Close()
}
