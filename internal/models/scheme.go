package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Scheme represents a government welfare scheme in the catalog
type Scheme struct {
	gorm.Model

	SchemeID    string `json:"scheme_id" gorm:"uniqueIndex"`
	Name        string `json:"name" gorm:"not null"`
	Category    string `json:"category" gorm:"index"` // e.g. "Education", "Healthcare", "Financial"
	Description string `json:"description"`

	Eligibility Eligibility `json:"eligibility" gorm:"type:jsonb"`
	Benefits    StringList  `json:"benefits" gorm:"type:jsonb"`
	Documents   StringList  `json:"documents" gorm:"type:jsonb"` // required document names

	ApplicationProcess string     `json:"application_process"`
	OfficialWebsite    string     `json:"official_website"`
	Deadline           *time.Time `json:"deadline"`
	IsActive           bool       `json:"is_active" gorm:"default:true"`
}

// Eligibility holds the criteria a citizen must meet for a scheme
type Eligibility struct {
	MinAge     int        `json:"min_age,omitempty"`
	MaxAge     int        `json:"max_age,omitempty"`
	Income     string     `json:"income,omitempty"` // e.g. "Below 2 LPA"
	Caste      StringList `json:"caste,omitempty"`  // e.g. ["General", "SC", "ST", "OBC"]
	Gender     string     `json:"gender,omitempty"` // "All", "Female", "Male"
	States     StringList `json:"states,omitempty"`
	Education  string     `json:"education,omitempty"`
	Employment string     `json:"employment,omitempty"`
}

func (e Eligibility) Value() (driver.Value, error) { return jsonValue(e) }
func (e *Eligibility) Scan(value interface{}) error { return jsonScan(e, value) }

// RecommendationCriteria is a citizen profile used to match schemes.
// Empty or "All" fields place no restriction.
type RecommendationCriteria struct {
	Age        int    `json:"age"`
	Income     string `json:"income"`
	Caste      string `json:"caste"`
	Gender     string `json:"gender"`
	State      string `json:"state"`
	Education  string `json:"education"`
	Employment string `json:"employment"`
}

// Matches reports whether the profile satisfies the criteria. Criteria the
// scheme leaves empty are open to everyone; a zero MaxAge means no upper
// bound. Text fields match by case-insensitive substring.
func (e Eligibility) Matches(p RecommendationCriteria) bool {
	if p.Age > 0 {
		if p.Age < e.MinAge {
			return false
		}
		if e.MaxAge > 0 && p.Age > e.MaxAge {
			return false
		}
	}
	if !matchesText(e.Income, p.Income) {
		return false
	}
	if !matchesList(e.Caste, p.Caste) {
		return false
	}
	if p.Gender != "" && p.Gender != "All" &&
		e.Gender != "" && e.Gender != "All" && e.Gender != p.Gender {
		return false
	}
	if !matchesList(e.States, p.State) {
		return false
	}
	if !matchesText(e.Education, p.Education) {
		return false
	}
	return matchesText(e.Employment, p.Employment)
}

func matchesText(criterion, value string) bool {
	if value == "" || value == "All" || criterion == "" {
		return true
	}
	return strings.Contains(strings.ToLower(criterion), strings.ToLower(value))
}

func matchesList(criteria StringList, value string) bool {
	if value == "" || value == "All" || len(criteria) == 0 {
		return true
	}
	for _, c := range criteria {
		if strings.EqualFold(c, value) || c == "All" {
			return true
		}
	}
	return false
}

// SchemeCategories are the fixed catalog categories
var SchemeCategories = []string{
	"Education", "Healthcare", "Financial", "Housing", "Employment",
	"Agriculture", "Women & Child", "Senior Citizen", "Disability",
	"Minority", "Rural Development", "Urban Development", "Skill Development",
	"Social Security", "Insurance", "Pension", "Emergency",
}

// BeforeCreate hook to auto-generate SchemeID
func (s *Scheme) BeforeCreate(tx *gorm.DB) error {
	if s.SchemeID == "" {
		s.SchemeID = fmt.Sprintf("SCH%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}
	return nil
}

// EstimatedApprovalDays returns the expected processing window for the
// scheme's category. Faster categories mirror the original review SLAs.
func (s *Scheme) EstimatedApprovalDays() int {
	switch s.Category {
	case "Emergency", "Healthcare":
		return 7
	case "Education", "Employment":
		return 21
	case "Financial", "Housing":
		return 45
	default:
		return 30
	}
}
