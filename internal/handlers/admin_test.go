package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemegenie/schemegenie-backend/internal/models"
)

func TestPendingApplications(t *testing.T) {
	app, store := newTestApp(t)
	_, adminToken := createTestUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)
	scheme := createTestScheme(t, store, "PM Scholarship Scheme", "Education")

	statuses := []string{
		models.StatusDraft, models.StatusSubmitted, models.StatusUnderReview, models.StatusApproved,
	}
	for i, status := range statuses {
		user, _ := createTestUser(t, store, "User", string(rune('a'+i))+"@example.com", models.RoleUser)
		_, err := store.CreateApplication(&models.Application{
			UserID:   user.UserID,
			SchemeID: scheme.SchemeID,
			Status:   status,
		})
		require.NoError(t, err)
	}

	resp, err := app.Test(jsonRequest(t, "GET", "/api/applications/pending", adminToken, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Only submitted and under_review are awaiting a decision
	body := decodeJSON(t, resp)
	assert.Equal(t, float64(2), body["count"])
}

func TestAllApplications_StatusFilter(t *testing.T) {
	app, store := newTestApp(t)
	_, adminToken := createTestUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)
	scheme := createTestScheme(t, store, "PM Scholarship Scheme", "Education")

	userA, _ := createTestUser(t, store, "A", "a@example.com", models.RoleUser)
	userB, _ := createTestUser(t, store, "B", "b@example.com", models.RoleUser)
	_, err := store.CreateApplication(&models.Application{UserID: userA.UserID, SchemeID: scheme.SchemeID, Status: models.StatusSubmitted})
	require.NoError(t, err)
	_, err = store.CreateApplication(&models.Application{UserID: userB.UserID, SchemeID: scheme.SchemeID, Status: models.StatusApproved})
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, "GET", "/api/admin/applications", adminToken, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decodeJSON(t, resp)["count"])

	resp, err = app.Test(jsonRequest(t, "GET", "/api/admin/applications?status=approved", adminToken, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decodeJSON(t, resp)["count"])
}

func TestDashboard(t *testing.T) {
	app, store := newTestApp(t)
	_, adminToken := createTestUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)
	scheme := createTestScheme(t, store, "PM Scholarship Scheme", "Education")

	user, _ := createTestUser(t, store, "Asha", "asha@example.com", models.RoleUser)
	_, err := store.CreateApplication(&models.Application{
		UserID:   user.UserID,
		SchemeID: scheme.SchemeID,
		Status:   models.StatusSubmitted,
	})
	require.NoError(t, err)

	resp, err := app.Test(jsonRequest(t, "GET", "/api/admin/dashboard", adminToken, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_users"])
	assert.Equal(t, float64(1), stats["total_applications"])
	assert.Equal(t, float64(1), stats["total_schemes"])
	assert.Equal(t, float64(1), stats["pending_applications"])

	recent := body["recent_applications"].([]interface{})
	assert.Len(t, recent, 1)
}

func TestListUsers_AdminOnly(t *testing.T) {
	app, store := newTestApp(t)
	_, userToken := createTestUser(t, store, "Asha", "asha@example.com", models.RoleUser)
	_, adminToken := createTestUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)

	resp, err := app.Test(jsonRequest(t, "GET", "/api/admin/users", userToken, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "GET", "/api/admin/users", adminToken, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decodeJSON(t, resp)["count"])
}
