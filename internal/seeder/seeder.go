// Package seeder generates demo data through the real ingestion path.
package seeder

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"gorm.io/gorm"

	"saledash/internal/activity"
	"saledash/internal/users"
)

var seedLocations = []string{
	"New York", "London", "Berlin", "Tokyo", "Madrid",
	"Paris", "Toronto", "Sydney", "", // some events carry no location
}

var seedPages = [][]string{
	{"/"},
	{"/", "/pricing"},
	{"/", "/products", "/checkout"},
	{"/blog", "/blog/launch", "/signup"},
}

// Seeder handles the data seeding process.
type Seeder struct {
	DB         *gorm.DB
	Logger     *slog.Logger
	EventCount int
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, logger *slog.Logger, eventCount int) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		DB:         db,
		Logger:     logger,
		EventCount: eventCount,
	}
}

// SeedUser populates the given account with randomized visits and signups.
// Every record goes through the real Record* operations so the contact
// rollups stay consistent with the raw tables.
func (s *Seeder) SeedUser(email string) error {
	start := time.Now()

	user, err := users.FindByEmail(s.DB, email)
	if err != nil {
		return fmt.Errorf("user %s not found: %w", email, err)
	}

	s.Logger.Info("Seeding demo data",
		slog.String("email", email),
		slog.Int("eventCount", s.EventCount))

	for i := 0; i < s.EventCount; i++ {
		contact := fmt.Sprintf("contact%d@example.com", rand.IntN(20))
		location := seedLocations[rand.IntN(len(seedLocations))]
		date := time.Now().AddDate(0, 0, -rand.IntN(30)).Format("2006-01-02")

		_, err := activity.RecordWebsiteVisit(s.DB, s.Logger, &activity.WebsiteVisitInput{
			IP:              randomIP(),
			OwnerContact:    contact,
			PageVisits:      seedPages[rand.IntN(len(seedPages))],
			WebsiteDuration: rand.IntN(600),
			Location:        location,
			Date:            date,
		}, user.ID)
		if err != nil {
			return fmt.Errorf("failed to seed website visit: %w", err)
		}

		// Roughly a third of website visitors also show up in store,
		// and a third of those sign up.
		if rand.IntN(3) == 0 {
			storeLocation := location
			if storeLocation == "" {
				storeLocation = "New York"
			}
			_, err := activity.RecordStoreVisit(s.DB, s.Logger, &activity.StoreVisitInput{
				OwnerContact: contact,
				Location:     storeLocation,
				Date:         date,
			}, user.ID)
			if err != nil {
				return fmt.Errorf("failed to seed store visit: %w", err)
			}

			if rand.IntN(3) == 0 {
				_, err := activity.RecordSignup(s.DB, s.Logger, &activity.SignupInput{
					Username: contact,
					Email:    contact,
					Location: storeLocation,
					Date:     date,
				}, user.ID)
				if err != nil {
					return fmt.Errorf("failed to seed signup: %w", err)
				}
			}
		}
	}

	s.Logger.Info("Seeding completed", slog.Duration("elapsed", time.Since(start)))
	return nil
}

func randomIP() string {
	return fmt.Sprintf("%d.%d.%d.%d", rand.IntN(223)+1, rand.IntN(256), rand.IntN(256), rand.IntN(256))
}
