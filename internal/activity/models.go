// Package activity stores raw marketing events and keeps the contact rollup
// consistent with them.
package activity

import (
	"time"

	"gorm.io/datatypes"
)

// WebsiteVisit is a logged visit to the user's website. OwnerContact is
// optional; when present the visit also updates the contact rollup.
type WebsiteVisit struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	IP              string         `gorm:"not null" json:"ip"`
	OwnerContact    string         `gorm:"index" json:"owner_contact"`
	NumberOfVisits  int            `gorm:"not null;default:1" json:"number_of_visits"`
	PageVisits      datatypes.JSON `json:"page_visits"`
	WebsiteDuration int            `gorm:"not null;default:0" json:"website_duration"`
	Location        string         `json:"location"`
	Date            string         `gorm:"index;not null" json:"date"`
	Time            string         `json:"time"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	CreatedAt       time.Time      `json:"created_at"`
}

// StoreVisit is a logged visit to a physical store. OwnerContact is required.
type StoreVisit struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OwnerContact   string    `gorm:"index;not null" json:"owner_contact"`
	NumberOfVisits int       `gorm:"not null;default:1" json:"number_of_visits"`
	Location       string    `gorm:"not null" json:"location"`
	Date           string    `gorm:"index;not null" json:"date"`
	Time           string    `json:"time"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// LoginSignup is a logged registration or login on the user's site.
type LoginSignup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"index;not null" json:"email"`
	Location  string    `json:"location"`
	Date      string    `gorm:"index;not null" json:"date"`
	Time      string    `json:"time"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// EmailInteraction is a flat record of an email exchange. It has no rollup
// side effects.
type EmailInteraction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EmailIDs    string    `gorm:"index" json:"email_ids"`
	EmailDomain string    `json:"email_domain"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Thread      string    `gorm:"index" json:"thread"`
	Sentiment   string    `gorm:"index" json:"sentiment"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CallInteraction is a flat record of a sales call. It has no rollup side
// effects.
type CallInteraction struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	EmailIDs            string    `gorm:"index" json:"email_ids"`
	Name                string    `json:"name"`
	CallDuration        string    `json:"call_duration"`
	VoiceRecordings     string    `json:"voice_recordings"`
	Transcripts         string    `gorm:"type:text" json:"transcripts"`
	Summary             string    `gorm:"type:text" json:"summary"`
	Sentiment           string    `gorm:"index" json:"sentiment"`
	ActionItems         string    `json:"action_items"`
	PurchaseIntentScore int       `json:"purchase_intent_score"`
	SalesHighlights     string    `json:"sales_highlights"`
	Date                string    `json:"date"`
	Time                string    `json:"time"`
	UserID              uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewsletterBlog is a flat record of a newsletter subscription. It has no
// rollup side effects.
type NewsletterBlog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"index;not null" json:"email"`
	Location       string    `json:"location"`
	Frequency      string    `json:"frequency"`
	Status         string    `gorm:"default:active" json:"status"`
	NewsletterName string    `json:"newsletter_name"`
	Blogs          string    `json:"blogs"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	UserID         uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
