package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemegenie/schemegenie-backend/internal/models"
)

func TestListSchemes_Public(t *testing.T) {
	app, store := newTestApp(t)
	createTestScheme(t, store, "PM Scholarship Scheme", "Education")
	createTestScheme(t, store, "Rural Housing Assistance", "Housing")

	// No token needed for browsing the catalog
	resp, err := app.Test(jsonRequest(t, "GET", "/api/schemes/", "", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, float64(2), body["count"])
}

func TestListSchemes_SearchQuery(t *testing.T) {
	app, store := newTestApp(t)
	createTestScheme(t, store, "PM Scholarship Scheme", "Education")
	createTestScheme(t, store, "Rural Housing Assistance", "Housing")

	resp, err := app.Test(jsonRequest(t, "GET", "/api/schemes/?search=scholarship", "", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decodeJSON(t, resp)["count"])

	resp, err = app.Test(jsonRequest(t, "GET", "/api/schemes/?category=Housing", "", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), decodeJSON(t, resp)["count"])
}

func TestGetScheme(t *testing.T) {
	app, store := newTestApp(t)
	scheme := createTestScheme(t, store, "PM Scholarship Scheme", "Education")

	resp, err := app.Test(jsonRequest(t, "GET", "/api/schemes/"+scheme.SchemeID, "", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, "PM Scholarship Scheme", body["name"])

	resp, err = app.Test(jsonRequest(t, "GET", "/api/schemes/SCH-missing", "", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateScheme_AdminOnly(t *testing.T) {
	app, store := newTestApp(t)
	_, userToken := createTestUser(t, store, "Asha", "asha@example.com", models.RoleUser)
	_, adminToken := createTestUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)

	payload := fiber.Map{
		"name":        "Senior Citizen Pension",
		"category":    "Pension",
		"description": "Monthly pension for senior citizens",
	}

	resp, err := app.Test(jsonRequest(t, "POST", "/api/schemes/", userToken, payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/schemes/", "", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(jsonRequest(t, "POST", "/api/schemes/", adminToken, payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeJSON(t, resp)
	created := body["scheme"].(map[string]interface{})
	assert.NotEmpty(t, created["scheme_id"])
	assert.True(t, created["is_active"].(bool))
}

func TestCreateScheme_MissingFields(t *testing.T) {
	app, store := newTestApp(t)
	_, adminToken := createTestUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/schemes/", adminToken, fiber.Map{
		"name": "Incomplete",
	}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUpdateScheme(t *testing.T) {
	app, store := newTestApp(t)
	_, adminToken := createTestUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)
	scheme := createTestScheme(t, store, "PM Scholarship Scheme", "Education")

	resp, err := app.Test(jsonRequest(t, "PUT", "/api/schemes/"+scheme.SchemeID, adminToken, fiber.Map{
		"description": "Updated description",
		"eligibility": fiber.Map{"min_age": 18},
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	updated := body["scheme"].(map[string]interface{})
	assert.Equal(t, "Updated description", updated["description"])
	assert.Equal(t, "PM Scholarship Scheme", updated["name"], "omitted fields stay unchanged")

	eligibility := updated["eligibility"].(map[string]interface{})
	assert.Equal(t, float64(18), eligibility["min_age"])

	// A follow-up update that omits eligibility must not clear it
	resp, err = app.Test(jsonRequest(t, "PUT", "/api/schemes/"+scheme.SchemeID, adminToken, fiber.Map{
		"description": "Second description",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body = decodeJSON(t, resp)
	updated = body["scheme"].(map[string]interface{})
	assert.Equal(t, "Second description", updated["description"])

	eligibility = updated["eligibility"].(map[string]interface{})
	assert.Equal(t, float64(18), eligibility["min_age"], "omitted eligibility stays unchanged")
}

func TestDeleteScheme(t *testing.T) {
	app, store := newTestApp(t)
	_, adminToken := createTestUser(t, store, "Admin", "admin@example.com", models.RoleAdmin)
	scheme := createTestScheme(t, store, "PM Scholarship Scheme", "Education")

	resp, err := app.Test(jsonRequest(t, "DELETE", "/api/schemes/"+scheme.SchemeID, adminToken, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err = store.GetScheme(scheme.SchemeID)
	assert.Error(t, err)

	resp, err = app.Test(jsonRequest(t, "DELETE", "/api/schemes/"+scheme.SchemeID, adminToken, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestChatbot(t *testing.T) {
	app, store := newTestApp(t)
	createTestScheme(t, store, "PM Scholarship Scheme", "Education")

	resp, err := app.Test(jsonRequest(t, "POST", "/api/chatbot", "", fiber.Map{
		"message": "What documents are required for PM Scholarship Scheme?",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Contains(t, body["response"], "Aadhaar Card")
}

func TestChatbot_EmptyMessage(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(jsonRequest(t, "POST", "/api/chatbot", "", fiber.Map{}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecommendations_ProfileFilter(t *testing.T) {
	app, store := newTestApp(t)

	_, err := store.CreateScheme(&models.Scheme{
		Name:        "PM Scholarship Scheme",
		Category:    "Education",
		Description: "Scholarship for students",
		Eligibility: models.Eligibility{MinAge: 17, MaxAge: 25, Income: "Below 2 LPA"},
	})
	require.NoError(t, err)
	_, err = store.CreateScheme(&models.Scheme{
		Name:        "Senior Citizen Pension",
		Category:    "Pension",
		Description: "Monthly pension",
		Eligibility: models.Eligibility{MinAge: 60},
	})
	require.NoError(t, err)

	// No token needed, mirrors the public catalog reads
	resp, err := app.Test(jsonRequest(t, "POST", "/api/recommendations", "", fiber.Map{
		"age":    20,
		"income": "Below 2 LPA",
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	require.Equal(t, float64(1), body["count"])

	recommendations := body["recommendations"].([]interface{})
	first := recommendations[0].(map[string]interface{})
	assert.Equal(t, "PM Scholarship Scheme", first["name"])
}

func TestRecommendations_NoMatchFallsBack(t *testing.T) {
	app, store := newTestApp(t)

	_, err := store.CreateScheme(&models.Scheme{
		Name:        "Senior Citizen Pension",
		Category:    "Pension",
		Description: "Monthly pension",
		Eligibility: models.Eligibility{MinAge: 60},
	})
	require.NoError(t, err)

	// A profile matching nothing still gets the full catalog back
	resp, err := app.Test(jsonRequest(t, "POST", "/api/recommendations", "", fiber.Map{
		"age": 20,
	}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, float64(1), body["count"])
}

func TestRecommendations_EmptyProfileListsAll(t *testing.T) {
	app, store := newTestApp(t)
	createTestScheme(t, store, "PM Scholarship Scheme", "Education")
	createTestScheme(t, store, "Rural Housing Assistance", "Housing")

	resp, err := app.Test(jsonRequest(t, "POST", "/api/recommendations", "", fiber.Map{}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, float64(2), body["count"])
}
