package analytics

import (
	"fmt"

	"gorm.io/gorm"

	"saledash/internal/activity"
)

// ComputeFunnel counts each event source for the user and derives the three
// conversion rates. Rates with a zero denominator come back as 0.
func ComputeFunnel(db *gorm.DB, userID uint) (*FunnelMetrics, error) {
	var totalWebsiteVisits int64
	err := db.Model(&activity.WebsiteVisit{}).
		Where("user_id = ?", userID).
		Count(&totalWebsiteVisits).Error
	if err != nil {
		return nil, fmt.Errorf("error counting website visits: %w", err)
	}

	var totalStoreVisits int64
	err = db.Model(&activity.StoreVisit{}).
		Where("user_id = ?", userID).
		Count(&totalStoreVisits).Error
	if err != nil {
		return nil, fmt.Errorf("error counting store visits: %w", err)
	}

	var totalSignups int64
	err = db.Model(&activity.LoginSignup{}).
		Where("user_id = ?", userID).
		Count(&totalSignups).Error
	if err != nil {
		return nil, fmt.Errorf("error counting signups: %w", err)
	}

	return &FunnelMetrics{
		TotalWebsiteVisits: totalWebsiteVisits,
		TotalStoreVisits:   totalStoreVisits,
		TotalSignups:       totalSignups,
		WebsiteToStoreRate: percentage(totalStoreVisits, totalWebsiteVisits),
		StoreToSignupRate:  percentage(totalSignups, totalStoreVisits),
		ConversionRate:     percentage(totalSignups, totalWebsiteVisits),
	}, nil
}
