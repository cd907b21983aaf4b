package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/schemegenie/schemegenie-backend/internal/middleware"
	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/services"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// DocumentHandler handles user document requests
type DocumentHandler struct {
	store    storage.Store
	notifier *services.NotificationService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(store storage.Store, notifier *services.NotificationService) *DocumentHandler {
	return &DocumentHandler{
		store:    store,
		notifier: notifier,
	}
}

// uploadDir returns the directory for stored files
func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// ListDocuments returns the authenticated user's documents, newest first
func (h *DocumentHandler) ListDocuments(c *fiber.Ctx) error {
	docs, err := h.store.GetDocumentsByUser(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve documents",
		})
	}

	return c.JSON(fiber.Map{
		"documents": docs,
		"count":     len(docs),
	})
}

// UploadDocument accepts a multipart upload ("document" field) with name,
// category, and description form values. The file lands in the upload
// directory under a generated name; verification starts at "pending".
func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	file, err := c.FormFile("document")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No document file provided",
		})
	}

	category := c.FormValue("category")
	if category == "" {
		category = "Other"
	}
	if !models.IsValidDocumentCategory(category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid document category",
		})
	}

	name := c.FormValue("name")
	if name == "" {
		name = file.Filename
	}

	if err := os.MkdirAll(uploadDir(), 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store document",
		})
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveFile(file, filepath.Join(uploadDir(), storedName)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store document",
		})
	}

	doc := &models.Document{
		UserID:       middleware.UserID(c),
		Name:         name,
		Category:     category,
		Description:  c.FormValue("description"),
		FileName:     storedName,
		OriginalName: file.Filename,
		MimeType:     file.Header.Get("Content-Type"),
		Size:         file.Size,
	}

	created, err := h.store.CreateDocument(doc)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save document",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Document uploaded successfully",
		"document": created,
	})
}

// DeleteDocument removes the caller's own document and its stored file
func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	doc, err := h.store.GetDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	if doc.UserID != middleware.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to delete this document",
		})
	}

	if err := h.store.DeleteDocument(doc.DocumentID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete document",
		})
	}

	if doc.FileName != "" {
		if err := os.Remove(filepath.Join(uploadDir(), doc.FileName)); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove stored file for %s: %v", doc.DocumentID, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Document deleted successfully",
	})
}

// ReportWrong lets the owner flag a document as the wrong file. The
// verification status is forced to needs_review regardless of its prior
// state; an admin must later resolve it.
func (h *DocumentHandler) ReportWrong(c *fiber.Ctx) error {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc, err := h.store.GetDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	if doc.UserID != middleware.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to report this document",
		})
	}

	now := time.Now()
	doc.VerificationStatus = models.DocumentStatusNeedsReview
	doc.IsVerified = false
	doc.ReportedWrong = true
	doc.ReportReason = req.Reason
	doc.ReportedAt = &now

	if err := h.store.UpdateDocument(doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update document",
		})
	}

	h.notifier.Emit(doc.UserID, models.NotificationDocumentNeedsReview,
		"Document Flagged for Review",
		fmt.Sprintf("Your document %s was flagged as the wrong file and will be re-reviewed by an admin.", doc.Name),
		models.NotificationData{DocumentID: doc.DocumentID})

	return c.JSON(fiber.Map{
		"message":  "Document reported successfully",
		"document": doc,
	})
}

// ExpiryStatus buckets the user's documents into expired, expiring within
// 30 days, and valid. Expiry flags are refreshed as a side effect.
func (h *DocumentHandler) ExpiryStatus(c *fiber.Ctx) error {
	docs, err := h.store.GetDocumentsByUser(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve documents",
		})
	}

	now := time.Now()
	var expired, expiringSoon, valid []*models.Document

	for _, doc := range docs {
		if doc.ExpiryDate == nil {
			valid = append(valid, doc)
			continue
		}

		isExpired := doc.ExpiryDate.Before(now)
		if doc.IsExpired != isExpired {
			doc.IsExpired = isExpired
			doc.ExpiryCheckedAt = &now
			if err := h.store.UpdateDocument(doc); err != nil {
				log.Printf("Failed to update expiry flag for %s: %v", doc.DocumentID, err)
			}
		}

		switch {
		case isExpired:
			expired = append(expired, doc)
		case doc.ExpiryDate.Sub(now) <= 30*24*time.Hour:
			expiringSoon = append(expiringSoon, doc)
		default:
			valid = append(valid, doc)
		}
	}

	return c.JSON(fiber.Map{
		"expired":       expired,
		"expiring_soon": expiringSoon,
		"valid":         valid,
	})
}
