// Package contacts maintains the denormalized per-contact rollup.
//
// A Contact row is a derived cache keyed by the contact's natural identifier
// (email or owner_contact value). It is created lazily by the first event that
// references the identifier and updated incrementally by each subsequent one.
// Analytics never read it; its only consumers are the contact list and detail
// views.
package contacts

import (
	"time"

	"gorm.io/gorm"
)

// Contact is the rollup row for a single contact identifier.
//
// Matching is exact string equality on ContactInfo. No trimming or case
// folding is performed, so "A@x.com" and "a@x.com" are distinct contacts.
type Contact struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ContactInfo        string    `gorm:"uniqueIndex;not null" json:"contact_info"`
	FirstSeen          time.Time `json:"first_seen"`
	LastActivity       time.Time `json:"last_activity"`
	TotalWebsiteVisits int       `gorm:"not null;default:0" json:"total_website_visits"`
	TotalStoreVisits   int       `gorm:"not null;default:0" json:"total_store_visits"`
	HasRegistered      bool      `gorm:"not null;default:false" json:"has_registered"`
	UserID             uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt          time.Time `json:"created_at"`
}

// TouchWebsiteVisit upserts the rollup for a website visit. On first contact
// the row is created with first_seen = last_activity = now and a counter of 1;
// on conflict only last_activity moves and the counter increments in SQL, so
// concurrent ingestions never lose updates.
func TouchWebsiteVisit(tx *gorm.DB, contactInfo string, userID uint, now time.Time) error {
	query := `
		INSERT INTO contacts (contact_info, first_seen, last_activity, total_website_visits, total_store_visits, has_registered, user_id, created_at)
		VALUES (?, ?, ?, 1, 0, false, ?, ?)
		ON CONFLICT (contact_info) DO UPDATE SET
			last_activity = ?,
			total_website_visits = contacts.total_website_visits + 1
	`
	return tx.Exec(query, contactInfo, now, now, userID, now, now).Error
}

// TouchStoreVisit upserts the rollup for a store visit, incrementing
// total_store_visits.
func TouchStoreVisit(tx *gorm.DB, contactInfo string, userID uint, now time.Time) error {
	query := `
		INSERT INTO contacts (contact_info, first_seen, last_activity, total_website_visits, total_store_visits, has_registered, user_id, created_at)
		VALUES (?, ?, ?, 0, 1, false, ?, ?)
		ON CONFLICT (contact_info) DO UPDATE SET
			last_activity = ?,
			total_store_visits = contacts.total_store_visits + 1
	`
	return tx.Exec(query, contactInfo, now, now, userID, now, now).Error
}

// TouchRegistration upserts the rollup for a signup. It marks the contact as
// registered without touching any visit counter. Re-running it for the same
// email is idempotent: has_registered stays true and never reverts.
func TouchRegistration(tx *gorm.DB, email string, userID uint, now time.Time) error {
	query := `
		INSERT INTO contacts (contact_info, first_seen, last_activity, total_website_visits, total_store_visits, has_registered, user_id, created_at)
		VALUES (?, ?, ?, 0, 0, true, ?, ?)
		ON CONFLICT (contact_info) DO UPDATE SET
			last_activity = ?,
			has_registered = true
	`
	return tx.Exec(query, email, now, now, userID, now, now).Error
}

// List returns the user's contacts ordered by most recent activity.
func List(db *gorm.DB, userID uint) ([]Contact, error) {
	var result []Contact
	err := db.Where("user_id = ?", userID).
		Order("last_activity DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindByID retrieves one of the user's contacts by row ID.
func FindByID(db *gorm.DB, id, userID uint) (*Contact, error) {
	var contact Contact
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

// FindByContactInfo retrieves one of the user's contacts by natural key.
func FindByContactInfo(db *gorm.DB, contactInfo string, userID uint) (*Contact, error) {
	var contact Contact
	if err := db.Where("contact_info = ? AND user_id = ?", contactInfo, userID).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}
