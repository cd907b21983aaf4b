package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Application represents one user's request to be considered for a scheme
type Application struct {
	gorm.Model

	ApplicationID string `json:"application_id" gorm:"uniqueIndex"`
	UserID        string `json:"user_id" gorm:"index"`
	SchemeID      string `json:"scheme_id" gorm:"index"`

	ApplicationData ApplicationData `json:"application_data" gorm:"type:jsonb"`

	// Lifecycle state, mutated only through the lifecycle engine
	Status string `json:"status" gorm:"default:draft;index"`

	// TrackingID is minted on first submission and usable for
	// unauthenticated status lookup. Empty while the application is a draft.
	TrackingID string `json:"tracking_id" gorm:"index"`

	EstimatedApprovalDays int    `json:"estimated_approval_days" gorm:"default:30"`
	Priority              string `json:"priority" gorm:"default:medium"` // low, medium, high, urgent

	// Transition timestamps, each set exactly once and never cleared
	SubmittedAt     *time.Time `json:"submitted_at"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	CompletedAt     *time.Time `json:"completed_at"`
	FinalApprovedAt *time.Time `json:"final_approved_at"`
	FinalRejectedAt *time.Time `json:"final_rejected_at"`

	// Review annotations, written verbatim, last write wins
	RejectionReason      string `json:"rejection_reason"`
	AdminRemarks         string `json:"admin_remarks"`
	FinalApprovalRemarks string `json:"final_approval_remarks"`
	ReviewedBy           string `json:"reviewed_by"`
}

// ApplicationData is the applicant-supplied form payload
type ApplicationData struct {
	PersonalInfo    PersonalInfo    `json:"personal_info"`
	EligibilityInfo EligibilityInfo `json:"eligibility_info"`
	Documents       []string        `json:"documents,omitempty"` // selected document IDs
}

// PersonalInfo is the applicant's identity section
type PersonalInfo struct {
	FullName    string `json:"full_name"`
	Aadhaar     string `json:"aadhaar,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Address     string `json:"address,omitempty"`
	State       string `json:"state,omitempty"`
	District    string `json:"district,omitempty"`
	Pincode     string `json:"pincode,omitempty"`
}

// EligibilityInfo is the applicant's self-declared eligibility section
type EligibilityInfo struct {
	Income     string `json:"income,omitempty"`
	Caste      string `json:"caste,omitempty"`
	Education  string `json:"education,omitempty"`
	Employment string `json:"employment,omitempty"`
}

func (a ApplicationData) Value() (driver.Value, error) { return jsonValue(a) }
func (a *ApplicationData) Scan(value interface{}) error { return jsonScan(a, value) }

// Application status constants
const (
	StatusDraft                = "draft"
	StatusSubmitted            = "submitted"
	StatusUnderReview          = "under_review"
	StatusApproved             = "approved"
	StatusRejected             = "rejected"
	StatusRequiresResubmission = "requires_resubmission"
	StatusFinalApproved        = "final_approved"
	StatusFinalRejected        = "final_rejected"
)

// ActiveStatuses are statuses that block a second application for the
// same (user, scheme) pair. Once an application reaches a terminal
// outcome or the approved stage, re-application is no longer the
// duplicate case the guard exists for.
var ActiveStatuses = []string{
	StatusDraft,
	StatusSubmitted,
	StatusUnderReview,
	StatusRequiresResubmission,
}

// IsActiveStatus reports whether status blocks a new application for the scheme
func IsActiveStatus(status string) bool {
	for _, s := range ActiveStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// BeforeCreate hook to auto-generate ApplicationID
func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ApplicationID == "" {
		a.ApplicationID = fmt.Sprintf("APL%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}

	if a.Status == "" {
		a.Status = StatusDraft
	}

	if a.Priority == "" {
		a.Priority = "medium"
	}

	return nil
}
