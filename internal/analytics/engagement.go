package analytics

import (
	"fmt"

	"gorm.io/gorm"
)

// ComputeEngagement averages session duration, page views per visit, and
// store visits per record, and counts the distinct calendar days with any
// activity. All averages are 0 when no rows exist.
func ComputeEngagement(db *gorm.DB, userID uint) (*EngagementMetrics, error) {
	var duration struct {
		Avg float64
	}
	err := db.Raw(`
		SELECT COALESCE(AVG(website_duration), 0) AS avg
		FROM website_visits
		WHERE user_id = ?`, userID).Scan(&duration).Error
	if err != nil {
		return nil, fmt.Errorf("error calculating average session duration: %w", err)
	}

	var pageViews struct {
		Avg float64
	}
	err = db.Raw(`
		SELECT COALESCE(AVG(json_array_length(page_visits)), 0) AS avg
		FROM website_visits
		WHERE user_id = ? AND page_visits IS NOT NULL`, userID).Scan(&pageViews).Error
	if err != nil {
		return nil, fmt.Errorf("error calculating average page views: %w", err)
	}

	var storeVisits struct {
		Avg float64
	}
	err = db.Raw(`
		SELECT COALESCE(AVG(number_of_visits), 0) AS avg
		FROM store_visits
		WHERE user_id = ?`, userID).Scan(&storeVisits).Error
	if err != nil {
		return nil, fmt.Errorf("error calculating average store visits: %w", err)
	}

	// A day counts once even when several event types occur on it, hence the
	// plain UNION before counting.
	var activeDays struct {
		Count int64
	}
	err = db.Raw(`
		SELECT COUNT(*) AS count
		FROM (
			SELECT date FROM website_visits WHERE user_id = ?
			UNION
			SELECT date FROM store_visits WHERE user_id = ?
			UNION
			SELECT date FROM login_signups WHERE user_id = ?
		) AS all_dates`, userID, userID, userID).Scan(&activeDays).Error
	if err != nil {
		return nil, fmt.Errorf("error counting active days: %w", err)
	}

	return &EngagementMetrics{
		AvgSessionDuration: duration.Avg,
		AvgPageViews:       pageViews.Avg,
		AvgStoreVisits:     storeVisits.Avg,
		ActiveDays:         activeDays.Count,
	}, nil
}
