package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Notification is a per-user record created as a side effect of an
// application or document status change, surfaced via a polling badge
type Notification struct {
	gorm.Model

	NotificationID string `json:"notification_id" gorm:"uniqueIndex"`
	UserID         string `json:"user_id" gorm:"index"`
	Type           string `json:"type"`
	Title          string `json:"title" gorm:"not null"`
	Message        string `json:"message"`

	Data NotificationData `json:"data" gorm:"type:jsonb"`

	Read      bool      `json:"read" gorm:"default:false;index"`
	Priority  string    `json:"priority" gorm:"default:medium"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index"`
}

// NotificationData carries references to the records that triggered the event
type NotificationData struct {
	ApplicationID   string `json:"application_id,omitempty"`
	SchemeID        string `json:"scheme_id,omitempty"`
	DocumentID      string `json:"document_id,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	TrackingID      string `json:"tracking_id,omitempty"`
}

func (n NotificationData) Value() (driver.Value, error) { return jsonValue(n) }
func (n *NotificationData) Scan(value interface{}) error { return jsonScan(n, value) }

// Notification type constants
const (
	NotificationApplicationSubmitted    = "application_submitted"
	NotificationApplicationUnderReview  = "application_under_review"
	NotificationApplicationApproved     = "application_approved"
	NotificationApplicationRejected     = "application_rejected"
	NotificationApplicationResubmission = "application_requires_resubmission"
	NotificationFinalApproved           = "application_final_approved"
	NotificationFinalRejected           = "application_final_rejected"
	NotificationDocumentVerified        = "document_verified"
	NotificationDocumentRejected        = "document_rejected"
	NotificationDocumentNeedsReview     = "document_needs_review"
	NotificationNewSchemeMatch          = "new_scheme_match"
)

// NotificationTTL is how long a notification is retained before the
// cleanup job removes it
const NotificationTTL = 30 * 24 * time.Hour

// BeforeCreate hook to auto-generate NotificationID and the retention deadline
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == "" {
		n.NotificationID = fmt.Sprintf("NTF%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}

	if n.ExpiresAt.IsZero() {
		n.ExpiresAt = time.Now().Add(NotificationTTL)
	}

	if n.Priority == "" {
		n.Priority = "medium"
	}

	return nil
}
