package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemegenie/schemegenie-backend/internal/models"
)

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.CreateUser(&models.User{Name: "Asha", Email: "asha@example.com", PasswordHash: "x"})
	require.NoError(t, err)

	// Same address with different case is still a duplicate
	_, err = store.CreateUser(&models.User{Name: "Asha Again", Email: "ASHA@Example.com", PasswordHash: "x"})
	require.Error(t, err)
	assert.Equal(t, "email already registered", err.Error())
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.CreateUser(&models.User{Name: "Asha", Email: "Asha@Example.com", PasswordHash: "x"})
	require.NoError(t, err)

	got, err := store.GetUserByEmail("asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.UserID, got.UserID)
}

func TestCreateApplication_DuplicateGuard(t *testing.T) {
	store := NewMemoryStore()

	first, err := store.CreateApplication(&models.Application{UserID: "USR1", SchemeID: "SCH1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, first.Status)

	// A second active application for the same (user, scheme) is blocked
	_, err = store.CreateApplication(&models.Application{UserID: "USR1", SchemeID: "SCH1"})
	require.Error(t, err)
	assert.Equal(t, "application already exists", err.Error())

	// Other users and other schemes are unaffected
	_, err = store.CreateApplication(&models.Application{UserID: "USR2", SchemeID: "SCH1"})
	assert.NoError(t, err)
	_, err = store.CreateApplication(&models.Application{UserID: "USR1", SchemeID: "SCH2"})
	assert.NoError(t, err)
}

func TestCreateApplication_TerminalOutcomeAllowsReapply(t *testing.T) {
	store := NewMemoryStore()

	app, err := store.CreateApplication(&models.Application{UserID: "USR1", SchemeID: "SCH1"})
	require.NoError(t, err)

	app.Status = models.StatusFinalRejected
	require.NoError(t, store.UpdateApplication(app))

	// A concluded application no longer blocks a fresh one
	_, err = store.CreateApplication(&models.Application{UserID: "USR1", SchemeID: "SCH1"})
	assert.NoError(t, err)
}

func TestGetActiveApplication(t *testing.T) {
	store := NewMemoryStore()

	app, err := store.CreateApplication(&models.Application{UserID: "USR1", SchemeID: "SCH1"})
	require.NoError(t, err)

	got, err := store.GetActiveApplication("USR1", "SCH1")
	require.NoError(t, err)
	assert.Equal(t, app.ApplicationID, got.ApplicationID)

	_, err = store.GetActiveApplication("USR2", "SCH1")
	assert.Error(t, err)

	app.Status = models.StatusFinalRejected
	require.NoError(t, store.UpdateApplication(app))

	_, err = store.GetActiveApplication("USR1", "SCH1")
	assert.Error(t, err, "terminal applications are not active")
}

func TestGetApplicationByTrackingID(t *testing.T) {
	store := NewMemoryStore()

	app, err := store.CreateApplication(&models.Application{
		UserID:     "USR1",
		SchemeID:   "SCH1",
		Status:     models.StatusSubmitted,
		TrackingID: "APP-1714060800-K2X9PQ4RD",
	})
	require.NoError(t, err)

	got, err := store.GetApplicationByTrackingID("APP-1714060800-K2X9PQ4RD")
	require.NoError(t, err)
	assert.Equal(t, app.ApplicationID, got.ApplicationID)

	// Drafts have an empty tracking ID; an empty lookup must not match them
	_, err = store.CreateApplication(&models.Application{UserID: "USR2", SchemeID: "SCH1"})
	require.NoError(t, err)
	_, err = store.GetApplicationByTrackingID("")
	assert.Error(t, err)
}

func TestApplicationData_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.CreateApplication(&models.Application{
		UserID:   "USR1",
		SchemeID: "SCH1",
		ApplicationData: models.ApplicationData{
			PersonalInfo: models.PersonalInfo{
				FullName: "Asha Devi",
				Aadhaar:  "1234-5678-9012",
				State:    "Bihar",
			},
			EligibilityInfo: models.EligibilityInfo{Income: "Below 2 LPA", Caste: "OBC"},
			Documents:       []string{"DOC00001"},
		},
	})
	require.NoError(t, err)

	apps, err := store.GetApplicationsByUser("USR1")
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Asha Devi", apps[0].ApplicationData.PersonalInfo.FullName)
	assert.Equal(t, "OBC", apps[0].ApplicationData.EligibilityInfo.Caste)
	assert.Equal(t, []string{"DOC00001"}, apps[0].ApplicationData.Documents)
}

func TestGetApplicationsByStatus_Variadic(t *testing.T) {
	store := NewMemoryStore()

	for i, status := range []string{models.StatusSubmitted, models.StatusUnderReview, models.StatusDraft, models.StatusApproved} {
		_, err := store.CreateApplication(&models.Application{
			UserID:   fmt.Sprintf("USR%d", i+1),
			SchemeID: "SCH1",
			Status:   status,
		})
		require.NoError(t, err)
	}

	apps, err := store.GetApplicationsByStatus(models.StatusSubmitted, models.StatusUnderReview)
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	apps, err = store.GetApplicationsByStatus(models.StatusApproved)
	require.NoError(t, err)
	assert.Len(t, apps, 1)
}

func TestSearchSchemes(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.CreateScheme(&models.Scheme{Name: "PM Scholarship Scheme", Category: "Education", Description: "For students"})
	require.NoError(t, err)
	_, err = store.CreateScheme(&models.Scheme{Name: "Rural Housing Assistance", Category: "Housing", Description: "Pucca houses"})
	require.NoError(t, err)

	schemes, err := store.SearchSchemes("scholarship")
	require.NoError(t, err)
	require.Len(t, schemes, 1)
	assert.Equal(t, "PM Scholarship Scheme", schemes[0].Name)

	// Category matches too
	schemes, err = store.SearchSchemes("housing")
	require.NoError(t, err)
	assert.Len(t, schemes, 1)

	schemes, err = store.SearchSchemes("pension")
	require.NoError(t, err)
	assert.Empty(t, schemes)
}

func TestCreateDocument_Defaults(t *testing.T) {
	store := NewMemoryStore()

	doc, err := store.CreateDocument(&models.Document{
		UserID:   "USR1",
		Name:     "Caste Certificate",
		Category: "Caste Certificate",
	})
	require.NoError(t, err)

	assert.Equal(t, models.DocumentStatusPending, doc.VerificationStatus)
	require.NotNil(t, doc.ExpiryDate)

	// Caste certificates are valid for five years
	years := doc.ExpiryDate.Sub(doc.UploadDate).Hours() / 24 / 365
	assert.InDelta(t, 5.0, years, 0.1)
}

func TestGetNotificationsByUser_Limit(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 5; i++ {
		_, err := store.CreateNotification(&models.Notification{UserID: "USR1", Title: "n"})
		require.NoError(t, err)
	}

	list, err := store.GetNotificationsByUser("USR1", 3)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = store.GetNotificationsByUser("USR1", 0)
	require.NoError(t, err)
	assert.Len(t, list, 5)
}

func TestDeleteExpiredNotifications(t *testing.T) {
	store := NewMemoryStore()

	expired, err := store.CreateNotification(&models.Notification{
		UserID:    "USR1",
		Title:     "old",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = store.CreateNotification(&models.Notification{UserID: "USR1", Title: "fresh"})
	require.NoError(t, err)

	deleted, err := store.DeleteExpiredNotifications(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.GetNotification(expired.NotificationID)
	assert.Error(t, err)

	remaining, err := store.GetNotificationsByUser("USR1", 0)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, "fresh", remaining[0].Title)
}

func TestGetExpiredDocuments(t *testing.T) {
	store := NewMemoryStore()

	past := time.Now().Add(-24 * time.Hour)
	_, err := store.CreateDocument(&models.Document{
		UserID:     "USR1",
		Name:       "Old income proof",
		Category:   "Income Proof",
		ExpiryDate: &past,
	})
	require.NoError(t, err)

	_, err = store.CreateDocument(&models.Document{UserID: "USR1", Name: "Fresh", Category: "Photo"})
	require.NoError(t, err)

	docs, err := store.GetExpiredDocuments(time.Now())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Old income proof", docs[0].Name)

	// Already-flagged documents are not returned again
	docs[0].IsExpired = true
	require.NoError(t, store.UpdateDocument(docs[0]))

	docs, err = store.GetExpiredDocuments(time.Now())
	require.NoError(t, err)
	assert.Empty(t, docs)
}
