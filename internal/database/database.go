// Package database manages the SQLite connection and schema migrations.
package database

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"saledash/internal/activity"
	"saledash/internal/config"
	"saledash/internal/contacts"
	"saledash/internal/users"
)

// Manager owns the gorm connection for the application.
type Manager struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
}

// NewManager creates a database manager for the given configuration.
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	return &Manager{cfg: cfg, logger: logger}
}

// Connect opens the database and applies connection settings and pragmas.
func (m *Manager) Connect() error {
	if m.cfg.Environment != config.Test {
		if err := os.MkdirAll(m.cfg.StoragePath, 0o755); err != nil {
			return fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(m.cfg.DatabaseName), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")
	db.Exec("PRAGMA journal_mode = WAL")
	db.Exec("PRAGMA busy_timeout = 5000")

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.cfg.GetMaxOpenConns())
	sqlDB.SetMaxIdleConns(m.cfg.GetMaxIdleConns())
	sqlDB.SetConnMaxLifetime(time.Hour)

	m.db = db
	m.logger.Info("Database connection established", slog.String("path", m.cfg.DatabaseName))
	return nil
}

// GetConnection returns the gorm connection, or nil if Connect has not run.
func (m *Manager) GetConnection() *gorm.DB {
	return m.db
}

// AllModels returns every model subject to auto-migration.
func AllModels() []any {
	return []any{
		&users.User{},
		&contacts.Contact{},
		&activity.WebsiteVisit{},
		&activity.StoreVisit{},
		&activity.LoginSignup{},
		&activity.EmailInteraction{},
		&activity.CallInteraction{},
		&activity.NewsletterBlog{},
	}
}

// Migrate runs schema migrations for all application models.
func (m *Manager) Migrate() error {
	if m.db == nil {
		return gorm.ErrInvalidDB
	}

	// Run migrations in a transaction
	err := m.db.Transaction(func(tx *gorm.DB) error {
		return tx.AutoMigrate(AllModels()...)
	})
	if err != nil {
		m.logger.Error("Failed to auto-migrate database", slog.Any("error", err))
		return err
	}

	m.logger.Info("Database migration completed successfully")
	return nil
}

// HealthCheck pings the database.
func (m *Manager) HealthCheck() error {
	if m.db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the underlying connection pool.
func (m *Manager) Close() error {
	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
