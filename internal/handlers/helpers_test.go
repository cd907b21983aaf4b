package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/schemegenie/schemegenie-backend/internal/middleware"
	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/routes"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// newTestApp wires the full route surface against a fresh memory store
func newTestApp(t *testing.T) (*fiber.App, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	storage.SetStore(store)

	app := fiber.New()
	routes.SetupRoutes(app, store)
	return app, store
}

// createTestUser registers an account directly in the store and returns
// it with a valid bearer token
func createTestUser(t *testing.T, store *storage.MemoryStore, name, email, role string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := store.CreateUser(&models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	require.NoError(t, err)

	token, err := middleware.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

// createTestScheme inserts a catalog entry for application tests
func createTestScheme(t *testing.T, store *storage.MemoryStore, name, category string) *models.Scheme {
	t.Helper()
	scheme, err := store.CreateScheme(&models.Scheme{
		Name:        name,
		Category:    category,
		Description: "Test scheme",
		Documents:   models.StringList{"Aadhaar Card"},
		Benefits:    models.StringList{"Monetary assistance"},
	})
	require.NoError(t, err)
	return scheme
}

// jsonRequest builds a request with an optional JSON body and bearer token
func jsonRequest(t *testing.T, method, path, token string, payload interface{}) *http.Request {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// decodeJSON unmarshals a response body into a generic map
func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
