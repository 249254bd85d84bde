package internal_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saledash/internal/testsupport"
)

// doJSON issues a request against the test app and decodes the JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

func TestHealthEndpoint(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)

	status, body := doJSON(t, app, fiber.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	require.NotEmpty(t, body["token"])

	// Duplicate registration is rejected.
	status, body = doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", fiber.Map{
		"name":     "Alice Again",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	status, body = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	status, body = doJSON(t, app, fiber.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusOK, status)
	user, _ := body["user"].(map[string]interface{})
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user["email"])

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRegisterValidation(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)

	tests := []struct {
		name    string
		payload fiber.Map
	}{
		{"missing email", fiber.Map{"password": "secret123"}},
		{"bad email", fiber.Map{"email": "not-an-email", "password": "secret123"}},
		{"short password", fiber.Map{"email": "bob@example.com", "password": "abc"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, app, fiber.MethodPost, "/api/auth/register", "", tc.payload)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)

	paths := []struct {
		method string
		path   string
	}{
		{fiber.MethodGet, "/api/website-visits/"},
		{fiber.MethodPost, "/api/website-visits/"},
		{fiber.MethodGet, "/api/store-visits/"},
		{fiber.MethodGet, "/api/login-signups/"},
		{fiber.MethodGet, "/api/contacts/"},
		{fiber.MethodGet, "/api/email-interactions/"},
		{fiber.MethodGet, "/api/analytics/funnel"},
		{fiber.MethodGet, "/api/analytics/engagement"},
		{fiber.MethodGet, "/api/analytics/geographic"},
		{fiber.MethodGet, "/api/auth/me"},
	}

	for _, p := range paths {
		status, body := doJSON(t, app, p.method, p.path, "", nil)
		assert.Equalf(t, fiber.StatusUnauthorized, status, "%s %s", p.method, p.path)
		assert.Equal(t, false, body["success"])
	}

	// A garbage token is as good as none.
	status, _ := doJSON(t, app, fiber.MethodGet, "/api/website-visits/", "garbage", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestWebsiteVisitLifecycle(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")
	token := testsupport.TokenFor(t, user)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/website-visits/", token, fiber.Map{
		"ip":            "203.0.113.10",
		"owner_contact": "alice@example.com",
		"page_visits":   []string{"/", "/pricing"},
		"location":      "Germany",
		"date":          "2026-03-10",
	})
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, true, body["success"])
	data, _ := body["data"].(map[string]interface{})
	require.NotNil(t, data)
	id := int(data["id"].(float64))
	require.NotZero(t, id)

	status, body = doJSON(t, app, fiber.MethodGet, "/api/website-visits/", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	list, _ := body["data"].([]interface{})
	assert.Len(t, list, 1)

	path := fmt.Sprintf("/api/website-visits/%d", id)

	status, body = doJSON(t, app, fiber.MethodGet, path, token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, fiber.MethodPut, path, token, fiber.Map{
		"ip":       "203.0.113.10",
		"location": "Austria",
		"date":     "2026-03-11",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, fiber.MethodDelete, path, token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, fiber.MethodGet, path, token, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestWebsiteVisitValidationOverHTTP(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")
	token := testsupport.TokenFor(t, user)

	// Missing IP
	status, body := doJSON(t, app, fiber.MethodPost, "/api/website-visits/", token, fiber.Map{
		"date": "2026-03-10",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	// Garbage date
	status, _ = doJSON(t, app, fiber.MethodPost, "/api/website-visits/", token, fiber.Map{
		"ip":   "203.0.113.10",
		"date": "10/03/2026",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestStoreVisitAndSignupEndpoints(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")
	token := testsupport.TokenFor(t, user)

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/store-visits/", token, fiber.Map{
		"owner_contact": "bob@example.com",
		"location":      "Berlin Store",
		"date":          "2026-03-10",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/login-signups/", token, fiber.Map{
		"username": "bob",
		"email":    "bob@example.com",
		"date":     "2026-03-11",
	})
	require.Equal(t, fiber.StatusCreated, status)

	// Both events rolled up into a single contact.
	status, body := doJSON(t, app, fiber.MethodGet, "/api/contacts/", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	contactList, _ := body["data"].([]interface{})
	require.Len(t, contactList, 1)

	contact, _ := contactList[0].(map[string]interface{})
	assert.Equal(t, "bob@example.com", contact["contact_info"])
	assert.EqualValues(t, 1, contact["total_store_visits"])
	assert.Equal(t, true, contact["has_registered"])
}

func TestInteractionEndpoints(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")
	token := testsupport.TokenFor(t, user)

	status, _ := doJSON(t, app, fiber.MethodPost, "/api/email-interactions/", token, fiber.Map{
		"email_ids": "alice@example.com",
		"subject":   "Pricing",
		"sentiment": "positive",
		"thread":    "t-1",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, body := doJSON(t, app, fiber.MethodGet, "/api/email-interactions/?sentiment=positive", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	list, _ := body["data"].([]interface{})
	assert.Len(t, list, 1)

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/call-interactions/", token, fiber.Map{
		"email_ids":     "alice@example.com",
		"name":          "Alice",
		"call_duration": "00:10:00",
	})
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSON(t, app, fiber.MethodPost, "/api/newsletter-blogs/", token, fiber.Map{
		"email":     "alice@example.com",
		"frequency": "weekly",
	})
	require.Equal(t, fiber.StatusCreated, status)

	// Newsletter without email is a validation failure.
	status, _ = doJSON(t, app, fiber.MethodPost, "/api/newsletter-blogs/", token, fiber.Map{
		"frequency": "weekly",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAnalyticsEndpoints(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)
	user := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")
	token := testsupport.TokenFor(t, user)

	testsupport.RecordTestWebsiteVisit(t, db, user.ID, "alice@example.com", "Germany", "2026-03-10")
	testsupport.RecordTestStoreVisit(t, db, user.ID, "alice@example.com", "Berlin Store", "2026-03-11")
	testsupport.RecordTestSignup(t, db, user.ID, "alice", "alice@example.com", "Germany", "2026-03-12")

	status, body := doJSON(t, app, fiber.MethodGet, "/api/analytics/funnel", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	funnel, _ := body["data"].(map[string]interface{})
	require.NotNil(t, funnel)
	assert.EqualValues(t, 1, funnel["totalWebsiteVisits"])
	assert.EqualValues(t, 1, funnel["totalStoreVisits"])
	assert.EqualValues(t, 1, funnel["totalSignups"])
	assert.EqualValues(t, 100, funnel["conversionRate"])

	status, body = doJSON(t, app, fiber.MethodGet, "/api/analytics/engagement", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	engagement, _ := body["data"].(map[string]interface{})
	require.NotNil(t, engagement)
	assert.EqualValues(t, 3, engagement["activeDays"])

	status, body = doJSON(t, app, fiber.MethodGet, "/api/analytics/geographic", token, nil)
	require.Equal(t, fiber.StatusOK, status)
	geographic, _ := body["data"].(map[string]interface{})
	require.NotNil(t, geographic)
	breakdown, _ := geographic["locationBreakdown"].([]interface{})
	require.NotEmpty(t, breakdown)
	first, _ := breakdown[0].(map[string]interface{})
	assert.Equal(t, "Germany", first["location"])
}

func TestUsersCannotSeeEachOthersData(t *testing.T) {
	db := testsupport.SetupTestDB(t)
	app := testsupport.CreateTestApp(t, db)

	owner := testsupport.CreateTestUser(t, db, "owner@example.com", "password1")
	other := testsupport.CreateTestUser(t, db, "other@example.com", "password2")

	visit := testsupport.RecordTestWebsiteVisit(t, db, owner.ID, "alice@example.com", "Germany", "2026-03-10")

	otherToken := testsupport.TokenFor(t, other)

	status, body := doJSON(t, app, fiber.MethodGet, "/api/website-visits/", otherToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	list, _ := body["data"].([]interface{})
	assert.Empty(t, list)

	status, _ = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/website-visits/%d", visit.ID), otherToken, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}
