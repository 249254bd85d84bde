package analytics_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saledash/internal/analytics"
	"saledash/internal/testsupport"
)

func TestComputeGeographicEmpty(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	metrics, err := analytics.ComputeGeographic(db, user.ID)
	require.NoError(t, err)

	assert.NotNil(t, metrics.LocationBreakdown)
	assert.Empty(t, metrics.LocationBreakdown)
	assert.Empty(t, metrics.TopLocations)
}

func TestComputeGeographicCountsPerSource(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", "Germany", "2026-03-10")
	testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", "Germany", "2026-03-11")
	testsupport.RecordTestStoreVisit(t, db, user.ID, "alice@example.com", "Germany", "2026-03-11")
	testsupport.RecordTestSignup(t, db, user.ID, "bob", "bob@example.com", "France", "2026-03-12")

	metrics, err := analytics.ComputeGeographic(db, user.ID)
	require.NoError(t, err)
	require.Len(t, metrics.LocationBreakdown, 2)

	germany := metrics.LocationBreakdown[0]
	assert.Equal(t, "Germany", germany.Location, "breakdown is ordered by total descending")
	assert.EqualValues(t, 2, germany.WebsiteVisits)
	assert.EqualValues(t, 1, germany.StoreVisits)
	assert.EqualValues(t, 0, germany.Signups)
	assert.EqualValues(t, 3, germany.Total)

	france := metrics.LocationBreakdown[1]
	assert.Equal(t, "France", france.Location)
	assert.EqualValues(t, 1, france.Signups)
	assert.EqualValues(t, 1, france.Total)
}

func TestComputeGeographicUnknownBucket(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	// Website visits and signups may carry an empty location.
	testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", "", "2026-03-10")
	testsupport.RecordTestSignup(t, db, user.ID, "bob", "bob@example.com", "", "2026-03-11")

	metrics, err := analytics.ComputeGeographic(db, user.ID)
	require.NoError(t, err)
	require.Len(t, metrics.LocationBreakdown, 1)

	unknown := metrics.LocationBreakdown[0]
	assert.Equal(t, analytics.UnknownLocation, unknown.Location)
	assert.EqualValues(t, 1, unknown.WebsiteVisits)
	assert.EqualValues(t, 1, unknown.Signups)
	assert.EqualValues(t, 2, unknown.Total)
}

func TestComputeGeographicLimits(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	// 12 distinct locations with decreasing event counts.
	for i := 0; i < 12; i++ {
		location := fmt.Sprintf("Country %02d", i)
		for j := 0; j <= 12-i; j++ {
			testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", location, "2026-03-10")
		}
	}

	metrics, err := analytics.ComputeGeographic(db, user.ID)
	require.NoError(t, err)

	assert.Len(t, metrics.LocationBreakdown, 10, "breakdown is capped at 10 locations")
	require.Len(t, metrics.TopLocations, 5)
	assert.Equal(t, metrics.LocationBreakdown[:5], metrics.TopLocations, "top locations is a prefix of the breakdown")

	for i := 1; i < len(metrics.LocationBreakdown); i++ {
		assert.GreaterOrEqual(t,
			metrics.LocationBreakdown[i-1].Total,
			metrics.LocationBreakdown[i].Total)
	}

	assert.Equal(t, "Country 00", metrics.LocationBreakdown[0].Location)
}

func TestComputeGeographicScopedToUser(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	owner := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")
	other := testsupport.CreateTestUser(t, db, "other@example.com", "password2")

	testsupport.RecordTestWebsiteVisit(t, db, owner.ID, "alice@example.com", "Germany", "2026-03-10")

	metrics, err := analytics.ComputeGeographic(db, other.ID)
	require.NoError(t, err)
	assert.Empty(t, metrics.LocationBreakdown)
}
