package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saledash/internal/analytics"
	"saledash/internal/testsupport"
)

func TestComputeFunnelEmpty(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	metrics, err := analytics.ComputeFunnel(db, user.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 0, metrics.TotalWebsiteVisits)
	assert.EqualValues(t, 0, metrics.TotalStoreVisits)
	assert.EqualValues(t, 0, metrics.TotalSignups)
	assert.Zero(t, metrics.WebsiteToStoreRate, "zero denominator yields 0, not NaN")
	assert.Zero(t, metrics.StoreToSignupRate)
	assert.Zero(t, metrics.ConversionRate)
}

func TestComputeFunnelFullConversion(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", "Germany", "2026-03-10")
	testsupport.RecordTestStoreVisit(t, db, user.ID, "alice@example.com", "Berlin Store", "2026-03-11")
	testsupport.RecordTestSignup(t, db, user.ID, "alice", "alice@example.com", "Germany", "2026-03-12")

	metrics, err := analytics.ComputeFunnel(db, user.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, metrics.TotalWebsiteVisits)
	assert.EqualValues(t, 1, metrics.TotalStoreVisits)
	assert.EqualValues(t, 1, metrics.TotalSignups)
	assert.InDelta(t, 100.0, metrics.WebsiteToStoreRate, 0.001)
	assert.InDelta(t, 100.0, metrics.StoreToSignupRate, 0.001)
	assert.InDelta(t, 100.0, metrics.ConversionRate, 0.001)
}

func TestComputeFunnelPartialConversion(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	for i := 0; i < 4; i++ {
		testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", "Germany", "2026-03-10")
	}
	testsupport.RecordTestStoreVisit(t, db, user.ID, "alice@example.com", "Berlin Store", "2026-03-11")
	testsupport.RecordTestSignup(t, db, user.ID, "alice", "alice@example.com", "Germany", "2026-03-12")

	metrics, err := analytics.ComputeFunnel(db, user.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 4, metrics.TotalWebsiteVisits)
	assert.InDelta(t, 25.0, metrics.WebsiteToStoreRate, 0.001)
	assert.InDelta(t, 100.0, metrics.StoreToSignupRate, 0.001)
	assert.InDelta(t, 25.0, metrics.ConversionRate, 0.001)
}

func TestComputeFunnelNoStoreVisits(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	for i := 0; i < 3; i++ {
		testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", "Germany", "2026-03-10")
	}

	metrics, err := analytics.ComputeFunnel(db, user.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 3, metrics.TotalWebsiteVisits)
	assert.EqualValues(t, 0, metrics.TotalStoreVisits)
	assert.Zero(t, metrics.WebsiteToStoreRate)
	assert.Zero(t, metrics.StoreToSignupRate, "empty store denominator yields 0")
	assert.Zero(t, metrics.ConversionRate)
}

func TestComputeFunnelScopedToUser(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	owner := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")
	other := testsupport.CreateTestUser(t, db, "other@example.com", "password2")

	testsupport.RecordTestWebsiteVisit(t, db, owner.ID, "alice@example.com", "Germany", "2026-03-10")

	metrics, err := analytics.ComputeFunnel(db, other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, metrics.TotalWebsiteVisits)
}

func TestComputeFunnelIsReadOnly(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", "Germany", "2026-03-10")

	first, err := analytics.ComputeFunnel(db, user.ID)
	require.NoError(t, err)
	second, err := analytics.ComputeFunnel(db, user.ID)
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeated computation over unchanged data is identical")
}
