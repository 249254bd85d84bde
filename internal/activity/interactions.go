package activity

import (
	"fmt"

	"gorm.io/gorm"
)

// CreateEmailInteraction stores an email interaction record.
func CreateEmailInteraction(db *gorm.DB, record *EmailInteraction) error {
	if err := db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to store email interaction: %w", err)
	}
	return nil
}

// ListEmailInteractions returns the user's email interactions, newest first,
// optionally filtered by sentiment and thread.
func ListEmailInteractions(db *gorm.DB, userID uint, sentiment, thread string) ([]EmailInteraction, error) {
	query := db.Where("user_id = ?", userID)
	if sentiment != "" {
		query = query.Where("sentiment = ?", sentiment)
	}
	if thread != "" {
		query = query.Where("thread = ?", thread)
	}

	var records []EmailInteraction
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// CreateCallInteraction stores a call interaction record.
func CreateCallInteraction(db *gorm.DB, record *CallInteraction) error {
	if err := db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to store call interaction: %w", err)
	}
	return nil
}

// ListCallInteractions returns the user's call interactions, newest first.
func ListCallInteractions(db *gorm.DB, userID uint) ([]CallInteraction, error) {
	var records []CallInteraction
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CreateNewsletterBlog stores a newsletter subscription record. Email is the
// only required field; status defaults to active.
func CreateNewsletterBlog(db *gorm.DB, record *NewsletterBlog) error {
	if record.Email == "" {
		return NewValidationError("email", "is required")
	}
	if record.Status == "" {
		record.Status = "active"
	}
	if err := db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to store newsletter subscription: %w", err)
	}
	return nil
}

// ListNewsletterBlogs returns the user's newsletter subscriptions, newest first.
func ListNewsletterBlogs(db *gorm.DB, userID uint) ([]NewsletterBlog, error) {
	var records []NewsletterBlog
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
