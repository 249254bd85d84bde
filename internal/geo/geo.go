// Package geo resolves client IPs to a display location using an optional
// GeoLite2 database. When no database is configured the package is a no-op.
package geo

import (
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/oschwald/geoip2-golang"
	"github.com/pariz/gountries"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"saledash/internal/config"
)

var (
	geoDB     *geoip2.Reader
	once      sync.Once
	mu        sync.RWMutex
	logger    *slog.Logger
	countries *gountries.Query
)

// InitLogger sets the logger for the geo package.
func InitLogger(l *slog.Logger) {
	logger = l
}

// initGeoDB opens the GeoLite2 database. Returns nil if the database is not
// configured or not found (geo enrichment is optional).
func initGeoDB() *geoip2.Reader {
	cfg := config.GetConfig()
	if cfg.GeoDBPath == "" {
		if logger != nil {
			logger.Debug("GeoIP database path not configured - location enrichment disabled")
		}
		return nil
	}

	if _, err := os.Stat(cfg.GeoDBPath); os.IsNotExist(err) {
		if logger != nil {
			logger.Info("GeoLite2 database not found - location enrichment disabled",
				slog.String("path", cfg.GeoDBPath),
				slog.String("hint", "Download from https://www.maxmind.com/en/geolite2/signup"))
		}
		return nil
	} else if err != nil {
		if logger != nil {
			logger.Warn("Error checking GeoLite2 database file",
				slog.String("path", cfg.GeoDBPath),
				slog.Any("error", err))
		}
		return nil
	}

	db, err := geoip2.Open(cfg.GeoDBPath)
	if err != nil {
		if logger != nil {
			logger.Error("Failed to open GeoLite2 database",
				slog.String("path", cfg.GeoDBPath),
				slog.Any("error", err))
		}
		return nil
	}

	if logger != nil {
		logger.Info("GeoLite2 database loaded", slog.String("path", cfg.GeoDBPath))
	}
	return db
}

// getGeoDB returns the shared reader, opening it on first use.
func getGeoDB() *geoip2.Reader {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		geoDB = initGeoDB()
		countries = gountries.New()
	})
	mu.RLock()
	defer mu.RUnlock()
	return geoDB
}

// Close releases the GeoLite2 reader if it was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if geoDB != nil {
		geoDB.Close()
		geoDB = nil
	}
}

// LocationFromIP resolves an IP address to a country display name, or ""
// when the database is unavailable or the IP cannot be resolved.
func LocationFromIP(ipAddress string) string {
	db := getGeoDB()
	if db == nil {
		return ""
	}

	ip := net.ParseIP(ipAddress)
	if ip == nil {
		return ""
	}

	record, err := db.Country(ip)
	if err != nil {
		if logger != nil {
			logger.Debug("GeoIP lookup failed",
				slog.String("ip_address", ipAddress),
				slog.Any("error", err))
		}
		return ""
	}

	isoCode := record.Country.IsoCode
	if isoCode == "" || isoCode == "--" {
		return ""
	}

	country, err := countries.FindCountryByAlpha(isoCode)
	if err != nil {
		// No gountries entry; fall back to the bare ISO code.
		return cases.Upper(language.AmericanEnglish).String(isoCode)
	}
	return country.Name.Common
}
