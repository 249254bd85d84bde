// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// Auth settings
	JWTSecret       string `mapstructure:"jwtsecret"`
	TokenTTLSeconds int    `mapstructure:"tokenttlseconds"`

	// File paths
	StoragePath  string `mapstructure:"storagepath"`
	DatabaseName string `mapstructure:"-"` // Derived from other settings
	GeoDBPath    string `mapstructure:"geodbpath"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseMaxOpenConns int `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int `mapstructure:"dbmaxidleconns"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		// Set defaults
		v.SetDefault("appname", "saledash")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("jwtsecret", "88888888888888888888888888888888")
		v.SetDefault("tokenttlseconds", 604800) // 1 week
		v.SetDefault("storagepath", "storage")
		v.SetDefault("geodbpath", "")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)
		v.SetDefault("dbmaxopenconns", 0)
		v.SetDefault("dbmaxidleconns", 0)

		// Bind environment variables
		v.BindEnv("appname", "SALEDASH_APP_NAME")
		v.BindEnv("appport", "SALEDASH_APP_PORT")
		v.BindEnv("environment", "SALEDASH_ENV")
		v.BindEnv("loglevel", "SALEDASH_LOG_LEVEL")
		v.BindEnv("jwtsecret", "SALEDASH_JWT_SECRET")
		v.BindEnv("tokenttlseconds", "SALEDASH_TOKEN_TTL_SECONDS")
		v.BindEnv("storagepath", "SALEDASH_STORAGE_PATH")
		v.BindEnv("geodbpath", "SALEDASH_GEO_DB_PATH")
		v.BindEnv("logsdir", "SALEDASH_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "SALEDASH_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "SALEDASH_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "SALEDASH_LOGS_MAX_AGE_IN_DAYS")
		v.BindEnv("dbmaxopenconns", "SALEDASH_DB_MAX_OPEN_CONNS")
		v.BindEnv("dbmaxidleconns", "SALEDASH_DB_MAX_IDLE_CONNS")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}

		// Set derived values
		cfg.DatabaseName = cfg.GetDatabasePath()
	})
	return cfg
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	switch c.Environment {
	case Development, Production, Test:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}

	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	if c.TokenTTLSeconds <= 0 {
		return fmt.Errorf("tokenttlseconds must be positive, got %d", c.TokenTTLSeconds)
	}

	return nil
}

// GetDatabasePath returns the full path to the database file for the current environment
func (c *Config) GetDatabasePath() string {
	if c.Environment == Test {
		return "file::memory:?cache=shared"
	}
	return filepath.Join(c.StoragePath, fmt.Sprintf("%s-%s.db", c.AppName, c.Environment))
}

// GetMaxOpenConns returns the configured max open connections or a sane default
func (c *Config) GetMaxOpenConns() int {
	if c.DatabaseMaxOpenConns > 0 {
		return c.DatabaseMaxOpenConns
	}
	return 1
}

// GetMaxIdleConns returns the configured max idle connections or a sane default
func (c *Config) GetMaxIdleConns() int {
	if c.DatabaseMaxIdleConns > 0 {
		return c.DatabaseMaxIdleConns
	}
	return 1
}

// IsProduction reports whether the app runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
