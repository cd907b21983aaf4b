package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Document represents a user-uploaded supporting file with its
// admin verification state. Documents are independent of any application.
type Document struct {
	gorm.Model

	DocumentID  string `json:"document_id" gorm:"uniqueIndex"`
	UserID      string `json:"user_id" gorm:"index"`
	Name        string `json:"name" gorm:"not null"`
	Category    string `json:"category" gorm:"index"`
	Description string `json:"description"`

	// File metadata
	FileName     string    `json:"file_name"`     // stored name on disk
	OriginalName string    `json:"original_name"` // name as uploaded
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	UploadDate   time.Time `json:"upload_date"`

	// Verification state, mutated only by admin actions or a user
	// "report wrong file" which forces needs_review
	VerificationStatus string     `json:"verification_status" gorm:"default:pending;index"`
	IsVerified         bool       `json:"is_verified" gorm:"default:false"`
	VerifiedAt         *time.Time `json:"verified_at"`
	VerifiedBy         string     `json:"verified_by"`
	AdminRemarks       string     `json:"admin_remarks"`

	// Expiry tracking
	ExpiryDate      *time.Time `json:"expiry_date"`
	IsExpired       bool       `json:"is_expired" gorm:"default:false"`
	ExpiryCheckedAt *time.Time `json:"expiry_checked_at"`

	// Wrong-file reports
	ReportedWrong bool       `json:"reported_wrong" gorm:"default:false"`
	ReportReason  string     `json:"report_reason"`
	ReportedAt    *time.Time `json:"reported_at"`

	// OCR metadata, populated by an external processing service
	OCRData OCRData `json:"ocr_data" gorm:"type:jsonb"`
}

// OCRData holds text-extraction metadata for a document
type OCRData struct {
	ExtractedText string     `json:"extracted_text,omitempty"`
	Confidence    float64    `json:"confidence,omitempty"`
	ProcessedAt   *time.Time `json:"processed_at,omitempty"`
	IsProcessed   bool       `json:"is_processed"`
}

func (o OCRData) Value() (driver.Value, error) { return jsonValue(o) }
func (o *OCRData) Scan(value interface{}) error { return jsonScan(o, value) }

// Document verification status constants
const (
	DocumentStatusPending     = "pending"
	DocumentStatusVerified    = "verified"
	DocumentStatusRejected    = "rejected"
	DocumentStatusNeedsReview = "needs_review"
)

// DocumentCategories are the accepted upload categories
var DocumentCategories = []string{
	"Aadhaar Card", "Income Proof", "Caste Certificate", "PAN Card",
	"Residence Certificate", "Ration Card", "Photo", "Signature",
	"Identity", "Banking", "Address", "Education", "Legal", "Medical",
	"Financial", "Property", "Business", "Other",
}

// IsValidDocumentCategory reports whether category is one of the accepted values
func IsValidDocumentCategory(category string) bool {
	for _, c := range DocumentCategories {
		if c == category {
			return true
		}
	}
	return false
}

// BeforeCreate hook to auto-generate DocumentID and a default expiry date
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.DocumentID == "" {
		d.DocumentID = fmt.Sprintf("DOC%d%03d", time.Now().Unix(), time.Now().Nanosecond()%1000)
	}

	if d.UploadDate.IsZero() {
		d.UploadDate = time.Now()
	}

	if d.VerificationStatus == "" {
		d.VerificationStatus = DocumentStatusPending
	}

	if d.ExpiryDate == nil {
		exp := DefaultExpiryDate(d.Category, time.Now())
		d.ExpiryDate = &exp
	}

	return nil
}

// DefaultExpiryDate returns the validity window for a document category.
// Certificates with longer legal validity expire later.
func DefaultExpiryDate(category string, from time.Time) time.Time {
	switch category {
	case "Caste Certificate", "Legal":
		return from.AddDate(5, 0, 0)
	case "Education":
		return from.AddDate(3, 0, 0)
	default:
		return from.AddDate(1, 0, 0)
	}
}
