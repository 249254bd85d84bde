// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"saledash/internal"
	"saledash/internal/activity"
	"saledash/internal/auth"
	"saledash/internal/contacts"
	"saledash/internal/users"
)

// testDBCache caches test databases by test name to allow multiple calls
// within the same test to share the same database
var testDBCache = make(map[string]*gorm.DB)
var testDBCacheMu sync.Mutex

// allModels returns all saledash models for migration
func allModels() []any {
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

// SetupTestDB creates a test database with all saledash models migrated.
// Uses a named in-memory database with cache=shared to allow multiple
// connections to share the same database within a test. Caches the database
// by test name so multiple calls within the same test return the same one.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testName := t.Name()

	// Use root test name for caching to handle closure issues where
	// setup functions capture the outer t while t.Run has subtest t
	rootName := testName
	if idx := strings.Index(testName, "/"); idx > 0 {
		rootName = testName[:idx]
	}

	testDBCacheMu.Lock()
	if db, exists := testDBCache[rootName]; exists {
		testDBCacheMu.Unlock()
		return db
	}
	testDBCacheMu.Unlock()

	sanitizedName := strings.ReplaceAll(rootName, "/", "_")
	dsn := fmt.Sprintf("file:test_%s_%d?mode=memory&cache=shared", sanitizedName, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("testsupport: failed to open test database: %v", err)
	}

	db.Exec("PRAGMA foreign_keys = ON")

	if err := db.AutoMigrate(allModels()...); err != nil {
		t.Fatalf("testsupport: failed to migrate models: %v", err)
	}

	testDBCacheMu.Lock()
	testDBCache[rootName] = db
	testDBCacheMu.Unlock()

	t.Cleanup(func() {
		testDBCacheMu.Lock()
		delete(testDBCache, rootName)
		testDBCacheMu.Unlock()
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// GetLogger returns a test logger
func GetLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}

// CreateTestUser creates a user with a properly hashed password.
func CreateTestUser(t *testing.T, db *gorm.DB, email, password string) *users.User {
	t.Helper()

	var user users.User
	if db.Where("email = ?", email).First(&user).Error == nil {
		return &user
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user = users.User{
		Name:              "Test User",
		Email:             email,
		EncryptedPassword: string(hashedPassword),
		Role:              users.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// TokenFor signs an access token for the given user.
func TokenFor(t *testing.T, user *users.User) string {
	t.Helper()

	token, err := auth.CreateAccessToken(user)
	require.NoError(t, err)
	return token
}

// CreateTestApp builds a fiber app with all routes mounted on the given db.
func CreateTestApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	app := fiber.New()
	internal.MountRoutes(app, db, GetLogger())
	return app
}

// RecordTestWebsiteVisit ingests a website visit through the real pipeline.
func RecordTestWebsiteVisit(t *testing.T, db *gorm.DB, userID uint, ownerContact, location, date string) *activity.WebsiteVisit {
	t.Helper()

	visit, err := activity.RecordWebsiteVisit(db, GetLogger(), &activity.WebsiteVisitInput{
		IP:           "203.0.113.10",
		OwnerContact: ownerContact,
		Location:     location,
		Date:         date,
	}, userID)
	require.NoError(t, err)
	return visit
}

// RecordTestStoreVisit ingests a store visit through the real pipeline.
func RecordTestStoreVisit(t *testing.T, db *gorm.DB, userID uint, ownerContact, location, date string) *activity.StoreVisit {
	t.Helper()

	visit, err := activity.RecordStoreVisit(db, GetLogger(), &activity.StoreVisitInput{
		OwnerContact: ownerContact,
		Location:     location,
		Date:         date,
	}, userID)
	require.NoError(t, err)
	return visit
}

// RecordTestSignup ingests a login/signup through the real pipeline.
func RecordTestSignup(t *testing.T, db *gorm.DB, userID uint, username, email, location, date string) *activity.LoginSignup {
	t.Helper()

	signup, err := activity.RecordSignup(db, GetLogger(), &activity.SignupInput{
		Username: username,
		Email:    email,
		Location: location,
		Date:     date,
	}, userID)
	require.NoError(t, err)
	return signup
}
