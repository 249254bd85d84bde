// Package analytics computes read-only aggregate metrics over the raw event
// tables, scoped to the requesting user.
//
// Every function here is a pure read over an injected *gorm.DB: no side
// effects, no retries, and either the full metric set or an error. Metrics are
// computed from the raw tables, never from the contact rollup.
//
// The package is organized into focused modules:
//   - funnel.go: visit -> store -> signup conversion rates
//   - engagement.go: duration, page view, and active-day averages
//   - geographic.go: per-location event breakdowns
package analytics

// FunnelMetrics is the conversion funnel across the three event sources.
// Rates are plain percentages in [0, 100].
type FunnelMetrics struct {
	TotalWebsiteVisits int64   `json:"totalWebsiteVisits"`
	TotalStoreVisits   int64   `json:"totalStoreVisits"`
	TotalSignups       int64   `json:"totalSignups"`
	WebsiteToStoreRate float64 `json:"websiteToStoreRate"`
	StoreToSignupRate  float64 `json:"storeToSignupRate"`
	ConversionRate     float64 `json:"conversionRate"`
}

// EngagementMetrics summarizes how intensively contacts interact with the
// user's properties.
type EngagementMetrics struct {
	AvgSessionDuration float64 `json:"avgSessionDuration"`
	AvgPageViews       float64 `json:"avgPageViews"`
	AvgStoreVisits     float64 `json:"avgStoreVisits"`
	ActiveDays         int64   `json:"activeDays"`
}

// LocationStat is the per-location slice of the geographic breakdown.
type LocationStat struct {
	Location      string `json:"location"`
	WebsiteVisits int64  `json:"website_visits"`
	StoreVisits   int64  `json:"store_visits"`
	Signups       int64  `json:"signups"`
	Total         int64  `json:"total"`
}

// GeographicMetrics holds the location breakdown ordered by descending total.
// TopLocations is a prefix of LocationBreakdown.
type GeographicMetrics struct {
	LocationBreakdown []LocationStat `json:"locationBreakdown"`
	TopLocations      []LocationStat `json:"topLocations"`
}

// percentage computes part/whole as a percentage, returning 0 for an empty
// denominator so rates never propagate NaN.
func percentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
