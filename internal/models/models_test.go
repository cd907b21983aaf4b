package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatedApprovalDays(t *testing.T) {
	cases := map[string]int{
		"Emergency":  7,
		"Healthcare": 7,
		"Education":  21,
		"Employment": 21,
		"Financial":  45,
		"Housing":    45,
		"Pension":    30,
		"":           30,
	}
	for category, want := range cases {
		s := Scheme{Category: category}
		assert.Equal(t, want, s.EstimatedApprovalDays(), "category %q", category)
	}
}

func TestDefaultExpiryDate(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, from.AddDate(5, 0, 0), DefaultExpiryDate("Caste Certificate", from))
	assert.Equal(t, from.AddDate(5, 0, 0), DefaultExpiryDate("Legal", from))
	assert.Equal(t, from.AddDate(3, 0, 0), DefaultExpiryDate("Education", from))
	assert.Equal(t, from.AddDate(1, 0, 0), DefaultExpiryDate("Photo", from))
}

func TestIsActiveStatus(t *testing.T) {
	for _, status := range []string{StatusDraft, StatusSubmitted, StatusUnderReview, StatusRequiresResubmission} {
		assert.True(t, IsActiveStatus(status), status)
	}
	for _, status := range []string{StatusApproved, StatusRejected, StatusFinalApproved, StatusFinalRejected} {
		assert.False(t, IsActiveStatus(status), status)
	}
}

func TestIsValidDocumentCategory(t *testing.T) {
	assert.True(t, IsValidDocumentCategory("Aadhaar Card"))
	assert.True(t, IsValidDocumentCategory("Other"))
	assert.False(t, IsValidDocumentCategory("aadhaar card"), "categories are case sensitive")
	assert.False(t, IsValidDocumentCategory("Astrology"))
}

func TestEligibilityMatches(t *testing.T) {
	criteria := Eligibility{
		MinAge:     18,
		MaxAge:     25,
		Income:     "Below 2 LPA",
		Caste:      StringList{"SC", "ST", "OBC"},
		Gender:     "All",
		States:     StringList{"Bihar", "Jharkhand"},
		Education:  "12th Pass",
		Employment: "Student",
	}

	match := RecommendationCriteria{
		Age: 20, Income: "Below 2 LPA", Caste: "OBC",
		Gender: "Female", State: "Bihar", Education: "12th Pass",
	}
	assert.True(t, criteria.Matches(match))

	assert.False(t, criteria.Matches(RecommendationCriteria{Age: 17}), "below min age")
	assert.False(t, criteria.Matches(RecommendationCriteria{Age: 26}), "above max age")
	assert.False(t, criteria.Matches(RecommendationCriteria{Caste: "General"}))
	assert.False(t, criteria.Matches(RecommendationCriteria{State: "Kerala"}))
	assert.False(t, criteria.Matches(RecommendationCriteria{Income: "Above 8 LPA"}))

	// "All" and empty profile fields place no restriction
	assert.True(t, criteria.Matches(RecommendationCriteria{Caste: "All", State: "All"}))
	assert.True(t, criteria.Matches(RecommendationCriteria{}))

	// Criteria the scheme leaves empty are open to everyone
	open := Eligibility{MinAge: 18}
	assert.True(t, open.Matches(RecommendationCriteria{Age: 70, Caste: "General", State: "Kerala"}))

	// Case-insensitive matching for lists and text
	assert.True(t, criteria.Matches(RecommendationCriteria{Caste: "obc", Income: "below 2 lpa"}))

	only := Eligibility{Gender: "Female"}
	assert.False(t, only.Matches(RecommendationCriteria{Gender: "Male"}))
	assert.True(t, only.Matches(RecommendationCriteria{Gender: "Female"}))
}

func TestApplicationData_ScanValue(t *testing.T) {
	in := ApplicationData{
		PersonalInfo:    PersonalInfo{FullName: "Asha Devi", State: "Bihar"},
		EligibilityInfo: EligibilityInfo{Income: "Below 2 LPA"},
		Documents:       []string{"DOC1"},
	}

	raw, err := in.Value()
	require.NoError(t, err)

	var out ApplicationData
	require.NoError(t, out.Scan(raw))
	assert.Equal(t, in, out)

	// Postgres drivers may hand back a string instead of []byte
	var fromString ApplicationData
	require.NoError(t, fromString.Scan(string(raw.([]byte))))
	assert.Equal(t, in, fromString)

	var fromNil ApplicationData
	require.NoError(t, fromNil.Scan(nil))
	assert.Empty(t, fromNil.PersonalInfo.FullName)
}
