package activity

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"saledash/internal/contacts"
)

// WebsiteVisitInput defines the input required to record a website visit.
type WebsiteVisitInput struct {
	IP              string   `json:"ip"`
	OwnerContact    string   `json:"owner_contact"`
	NumberOfVisits  int      `json:"number_of_visits"`
	PageVisits      []string `json:"page_visits"`
	WebsiteDuration int      `json:"website_duration"`
	Location        string   `json:"location"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
}

// StoreVisitInput defines the input required to record a store visit.
type StoreVisitInput struct {
	OwnerContact   string `json:"owner_contact"`
	NumberOfVisits int    `json:"number_of_visits"`
	Location       string `json:"location"`
	Date           string `json:"date"`
	Time           string `json:"time"`
}

// SignupInput defines the input required to record a login/signup.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(:[0-5]\d)?$`)

// normalizeDate validates a date string and normalizes it to YYYY-MM-DD.
// Both plain dates and RFC 3339 timestamps are accepted.
func normalizeDate(value string) (string, error) {
	if value == "" {
		return "", NewValidationError("date", "is required")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.Format("2006-01-02"), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format("2006-01-02"), nil
	}
	return "", NewValidationError("date", "must be a parseable date")
}

// validateTime checks the optional HH:MM[:SS] time-of-day field.
func validateTime(value string) error {
	if value == "" {
		return nil
	}
	if !timePattern.MatchString(value) {
		return NewValidationError("time", "must be HH:MM or HH:MM:SS")
	}
	return nil
}

// RecordWebsiteVisit inserts the raw visit row and, when an owner contact is
// given, upserts the contact rollup. Both writes happen in one transaction:
// either both commit or neither does.
func RecordWebsiteVisit(db *gorm.DB, logger *slog.Logger, input *WebsiteVisitInput, userID uint) (*WebsiteVisit, error) {
	if input.IP == "" {
		return nil, NewValidationError("ip", "is required")
	}
	date, err := normalizeDate(input.Date)
	if err != nil {
		return nil, err
	}
	if err := validateTime(input.Time); err != nil {
		return nil, err
	}
	if input.NumberOfVisits < 0 {
		return nil, NewValidationError("number_of_visits", "must be at least 1")
	}
	if input.WebsiteDuration < 0 {
		return nil, NewValidationError("website_duration", "must not be negative")
	}

	numberOfVisits := input.NumberOfVisits
	if numberOfVisits == 0 {
		numberOfVisits = 1
	}

	pages := input.PageVisits
	if pages == nil {
		pages = []string{}
	}
	pageVisits, err := json.Marshal(pages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode page visits: %w", err)
	}

	now := time.Now().UTC()
	visit := &WebsiteVisit{
		IP:              input.IP,
		OwnerContact:    input.OwnerContact,
		NumberOfVisits:  numberOfVisits,
		PageVisits:      datatypes.JSON(pageVisits),
		WebsiteDuration: input.WebsiteDuration,
		Location:        input.Location,
		Date:            date,
		Time:            input.Time,
		UserID:          userID,
		CreatedAt:       now,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(visit).Error; err != nil {
			return fmt.Errorf("failed to store website visit: %w", err)
		}
		if input.OwnerContact != "" {
			if err := contacts.TouchWebsiteVisit(tx, input.OwnerContact, userID, now); err != nil {
				return fmt.Errorf("failed to update contact rollup: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to record website visit", slog.Any("error", err))
		return nil, err
	}

	logger.Debug("Recorded website visit",
		slog.Uint64("id", uint64(visit.ID)),
		slog.String("owner_contact", visit.OwnerContact))
	return visit, nil
}

// RecordStoreVisit inserts the raw visit row and increments the contact's
// store-visit counter. Unlike website visits, the owner contact is required,
// so the rollup is always touched.
func RecordStoreVisit(db *gorm.DB, logger *slog.Logger, input *StoreVisitInput, userID uint) (*StoreVisit, error) {
	if input.OwnerContact == "" {
		return nil, NewValidationError("owner_contact", "is required")
	}
	if input.Location == "" {
		return nil, NewValidationError("location", "is required")
	}
	date, err := normalizeDate(input.Date)
	if err != nil {
		return nil, err
	}
	if err := validateTime(input.Time); err != nil {
		return nil, err
	}
	if input.NumberOfVisits < 0 {
		return nil, NewValidationError("number_of_visits", "must be at least 1")
	}

	numberOfVisits := input.NumberOfVisits
	if numberOfVisits == 0 {
		numberOfVisits = 1
	}

	now := time.Now().UTC()
	visit := &StoreVisit{
		OwnerContact:   input.OwnerContact,
		NumberOfVisits: numberOfVisits,
		Location:       input.Location,
		Date:           date,
		Time:           input.Time,
		UserID:         userID,
		CreatedAt:      now,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(visit).Error; err != nil {
			return fmt.Errorf("failed to store store visit: %w", err)
		}
		if err := contacts.TouchStoreVisit(tx, input.OwnerContact, userID, now); err != nil {
			return fmt.Errorf("failed to update contact rollup: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to record store visit", slog.Any("error", err))
		return nil, err
	}

	logger.Debug("Recorded store visit",
		slog.Uint64("id", uint64(visit.ID)),
		slog.String("owner_contact", visit.OwnerContact))
	return visit, nil
}

// RecordSignup inserts the raw signup row and marks the contact as registered.
// The rollup is keyed on the signup email and no visit counter is touched.
func RecordSignup(db *gorm.DB, logger *slog.Logger, input *SignupInput, userID uint) (*LoginSignup, error) {
	if input.Username == "" {
		return nil, NewValidationError("username", "is required")
	}
	if input.Email == "" {
		return nil, NewValidationError("email", "is required")
	}
	date, err := normalizeDate(input.Date)
	if err != nil {
		return nil, err
	}
	if err := validateTime(input.Time); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	signup := &LoginSignup{
		Username:  input.Username,
		Email:     input.Email,
		Location:  input.Location,
		Date:      date,
		Time:      input.Time,
		UserID:    userID,
		CreatedAt: now,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(signup).Error; err != nil {
			return fmt.Errorf("failed to store login/signup: %w", err)
		}
		if err := contacts.TouchRegistration(tx, input.Email, userID, now); err != nil {
			return fmt.Errorf("failed to update contact rollup: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to record signup", slog.Any("error", err))
		return nil, err
	}

	logger.Debug("Recorded signup",
		slog.Uint64("id", uint64(signup.ID)),
		slog.String("email", signup.Email))
	return signup, nil
}
