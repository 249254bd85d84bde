package activity

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListWebsiteVisits returns the user's website visits, newest first.
func ListWebsiteVisits(db *gorm.DB, userID uint) ([]WebsiteVisit, error) {
	var visits []WebsiteVisit
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

// FindWebsiteVisit retrieves one of the user's website visits by ID.
func FindWebsiteVisit(db *gorm.DB, id, userID uint) (*WebsiteVisit, error) {
	var visit WebsiteVisit
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&visit).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

// UpdateWebsiteVisit replaces the stored fields of a website visit. The
// contact rollup is deliberately left untouched: explicit updates correct raw
// data, they do not replay ingestion.
func UpdateWebsiteVisit(db *gorm.DB, id, userID uint, input *WebsiteVisitInput) (*WebsiteVisit, error) {
	visit, err := FindWebsiteVisit(db, id, userID)
	if err != nil {
		return nil, err
	}

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

	pages := input.PageVisits
	if pages == nil {
		pages = []string{}
	}
	pageVisits, err := json.Marshal(pages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode page visits: %w", err)
	}

	visit.IP = input.IP
	visit.OwnerContact = input.OwnerContact
	visit.NumberOfVisits = input.NumberOfVisits
	visit.PageVisits = datatypes.JSON(pageVisits)
	visit.WebsiteDuration = input.WebsiteDuration
	visit.Location = input.Location
	visit.Date = date
	visit.Time = input.Time

	if err := db.Save(visit).Error; err != nil {
		return nil, fmt.Errorf("failed to update website visit: %w", err)
	}
	return visit, nil
}

// DeleteWebsiteVisit removes one of the user's website visits.
func DeleteWebsiteVisit(db *gorm.DB, id, userID uint) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&WebsiteVisit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListStoreVisits returns the user's store visits, newest first.
func ListStoreVisits(db *gorm.DB, userID uint) ([]StoreVisit, error) {
	var visits []StoreVisit
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}

// FindStoreVisit retrieves one of the user's store visits by ID.
func FindStoreVisit(db *gorm.DB, id, userID uint) (*StoreVisit, error) {
	var visit StoreVisit
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&visit).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

// UpdateStoreVisit replaces the stored fields of a store visit without
// touching the rollup.
func UpdateStoreVisit(db *gorm.DB, id, userID uint, input *StoreVisitInput) (*StoreVisit, error) {
	visit, err := FindStoreVisit(db, id, userID)
	if err != nil {
		return nil, err
	}

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

	visit.OwnerContact = input.OwnerContact
	visit.NumberOfVisits = input.NumberOfVisits
	visit.Location = input.Location
	visit.Date = date
	visit.Time = input.Time

	if err := db.Save(visit).Error; err != nil {
		return nil, fmt.Errorf("failed to update store visit: %w", err)
	}
	return visit, nil
}

// DeleteStoreVisit removes one of the user's store visits.
func DeleteStoreVisit(db *gorm.DB, id, userID uint) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&StoreVisit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListLoginSignups returns the user's login/signup records, newest first.
func ListLoginSignups(db *gorm.DB, userID uint) ([]LoginSignup, error) {
	var signups []LoginSignup
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&signups).Error
	if err != nil {
		return nil, err
	}
	return signups, nil
}

// FindLoginSignup retrieves one of the user's login/signup records by ID.
func FindLoginSignup(db *gorm.DB, id, userID uint) (*LoginSignup, error) {
	var signup LoginSignup
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&signup).Error; err != nil {
		return nil, err
	}
	return &signup, nil
}

// DeleteLoginSignup removes one of the user's login/signup records.
func DeleteLoginSignup(db *gorm.DB, id, userID uint) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&LoginSignup{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
