package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"saledash/internal/activity"
	"saledash/internal/contacts"
	"saledash/internal/testsupport"
)

func TestWebsiteVisitCRUD(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	created := testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", "Germany", "2026-03-10")

	found, err := activity.FindWebsiteVisit(db, created.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	updated, err := activity.UpdateWebsiteVisit(db, created.ID, user.ID, &activity.WebsiteVisitInput{
		IP:           "203.0.113.10",
		OwnerContact: "alice@example.com",
		Location:     "Austria",
		Date:         "2026-03-11",
	})
	require.NoError(t, err)
	assert.Equal(t, "Austria", updated.Location)
	assert.Equal(t, "2026-03-11", updated.Date)

	// Correcting a record does not replay ingestion against the rollup.
	rollup, err := contacts.FindByContactInfo(db, "alice@example.com", user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rollup.TotalWebsiteVisits)

	require.NoError(t, activity.DeleteWebsiteVisit(db, created.ID, user.ID))

	_, err = activity.FindWebsiteVisit(db, created.ID, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWebsiteVisitScopedToUser(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	owner := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")
	other := testsupport.CreateTestUser(t, db, "other@example.com", "password2")

	created := testsupport.RecordTestWebsiteVisit(t, db, owner.ID, "alice@example.com", "Germany", "2026-03-10")

	_, err := activity.FindWebsiteVisit(db, created.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = activity.DeleteWebsiteVisit(db, created.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	list, err := activity.ListWebsiteVisits(db, other.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStoreVisitCRUD(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	created := testsupport.RecordTestStoreVisit(t, db, user.ID, "bob@example.com", "Berlin Store", "2026-03-10")

	updated, err := activity.UpdateStoreVisit(db, created.ID, user.ID, &activity.StoreVisitInput{
		OwnerContact:   "bob@example.com",
		NumberOfVisits: 2,
		Location:       "Munich Store",
		Date:           "2026-03-11",
	})
	require.NoError(t, err)
	assert.Equal(t, "Munich Store", updated.Location)
	assert.Equal(t, 2, updated.NumberOfVisits)

	list, err := activity.ListStoreVisits(db, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, activity.DeleteStoreVisit(db, created.ID, user.ID))
	assert.ErrorIs(t, activity.DeleteStoreVisit(db, created.ID, user.ID), gorm.ErrRecordNotFound)
}

func TestLoginSignupCRUD(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")

	created := testsupport.RecordTestSignup(t, db, user.ID, "carol", "carol@example.com", "Spain", "2026-03-10")

	found, err := activity.FindLoginSignup(db, created.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", found.Username)

	list, err := activity.ListLoginSignups(db, user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, activity.DeleteLoginSignup(db, created.ID, user.ID))

	_, err = activity.FindLoginSignup(db, created.ID, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
