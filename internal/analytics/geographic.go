package analytics

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	// UnknownLocation is the bucket for rows with a null or empty location.
	UnknownLocation = "Unknown"

	locationBreakdownLimit = 10
	topLocationsLimit      = 5
)

// ComputeGeographic groups all three event sources by location and counts
// each source per location. The breakdown is ordered by total descending and
// capped at 10 locations; TopLocations is the first 5 of that ordering.
func ComputeGeographic(db *gorm.DB, userID uint) (*GeographicMetrics, error) {
	var breakdown []LocationStat
	query := `
		SELECT
			location,
			SUM(CASE WHEN source = 'website' THEN 1 ELSE 0 END) AS website_visits,
			SUM(CASE WHEN source = 'store' THEN 1 ELSE 0 END) AS store_visits,
			SUM(CASE WHEN source = 'signup' THEN 1 ELSE 0 END) AS signups,
			COUNT(*) AS total
		FROM (
			SELECT COALESCE(NULLIF(location, ''), ?) AS location, 'website' AS source
			FROM website_visits WHERE user_id = ?
			UNION ALL
			SELECT COALESCE(NULLIF(location, ''), ?) AS location, 'store' AS source
			FROM store_visits WHERE user_id = ?
			UNION ALL
			SELECT COALESCE(NULLIF(location, ''), ?) AS location, 'signup' AS source
			FROM login_signups WHERE user_id = ?
		) AS all_locations
		GROUP BY location
		ORDER BY total DESC
		LIMIT ?
	`
	err := db.Raw(query,
		UnknownLocation, userID,
		UnknownLocation, userID,
		UnknownLocation, userID,
		locationBreakdownLimit,
	).Scan(&breakdown).Error
	if err != nil {
		return nil, fmt.Errorf("error computing geographic breakdown: %w", err)
	}

	if breakdown == nil {
		breakdown = []LocationStat{}
	}

	top := breakdown
	if len(top) > topLocationsLimit {
		top = top[:topLocationsLimit]
	}

	return &GeographicMetrics{
		LocationBreakdown: breakdown,
		TopLocations:      top,
	}, nil
}
