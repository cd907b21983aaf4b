package handlers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/schemegenie/schemegenie-backend/internal/middleware"
	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/services"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// AdminHandler handles the review surface: application lifecycle
// transitions, document verification, and dashboard queries
type AdminHandler struct {
	store     storage.Store
	lifecycle *services.LifecycleEngine
	notifier  *services.NotificationService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store storage.Store, lifecycle *services.LifecycleEngine, notifier *services.NotificationService) *AdminHandler {
	return &AdminHandler{
		store:     store,
		lifecycle: lifecycle,
		notifier:  notifier,
	}
}

// PendingApplications lists applications awaiting a decision
func (h *AdminHandler) PendingApplications(c *fiber.Ctx) error {
	apps, err := h.store.GetApplicationsByStatus(models.StatusSubmitted, models.StatusUnderReview)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch pending applications",
		})
	}

	return c.JSON(fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// AllApplications lists every application, optionally filtered by ?status=
func (h *AdminHandler) AllApplications(c *fiber.Ctx) error {
	var (
		apps []*models.Application
		err  error
	)

	if status := c.Query("status"); status != "" {
		apps, err = h.store.GetApplicationsByStatus(status)
	} else {
		apps, err = h.store.GetAllApplications()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch applications",
		})
	}

	return c.JSON(fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// VerifyApplication performs an admin lifecycle transition on an application
func (h *AdminHandler) VerifyApplication(c *fiber.Ctx) error {
	var req struct {
		Status               string `json:"status"`
		RejectionReason      string `json:"rejection_reason"`
		AdminRemarks         string `json:"admin_remarks"`
		FinalApprovalRemarks string `json:"final_approval_remarks"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	app, err := h.store.GetApplication(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	err = h.lifecycle.Transition(app, models.RoleAdmin, services.TransitionRequest{
		TargetStatus:         req.Status,
		RejectionReason:      req.RejectionReason,
		AdminRemarks:         req.AdminRemarks,
		FinalApprovalRemarks: req.FinalApprovalRemarks,
		ActorID:              middleware.UserID(c),
	})
	if err != nil {
		return transitionError(c, err)
	}

	log.Printf("Application %s moved to %s by %s", app.ApplicationID, app.Status, middleware.UserID(c))

	return c.JSON(fiber.Map{
		"message":     fmt.Sprintf("Application %s successfully", app.Status),
		"application": app,
	})
}

// AllDocuments lists documents for the review queue, optionally by ?status=
func (h *AdminHandler) AllDocuments(c *fiber.Ctx) error {
	var (
		docs []*models.Document
		err  error
	)

	if status := c.Query("status"); status != "" {
		docs, err = h.store.GetDocumentsByStatus(status)
	} else {
		docs, err = h.store.GetAllDocuments()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch documents",
		})
	}

	return c.JSON(fiber.Map{
		"documents": docs,
		"count":     len(docs),
	})
}

// VerifyDocument resolves a document's verification status. Remarks are
// optional here, unlike application rejection.
func (h *AdminHandler) VerifyDocument(c *fiber.Ctx) error {
	var req struct {
		Status       string `json:"status"`
		AdminRemarks string `json:"admin_remarks"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Status != models.DocumentStatusVerified && req.Status != models.DocumentStatusRejected {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be 'verified' or 'rejected'",
		})
	}

	doc, err := h.store.GetDocument(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Document not found",
		})
	}

	now := time.Now()
	doc.VerificationStatus = req.Status
	doc.IsVerified = req.Status == models.DocumentStatusVerified
	doc.VerifiedBy = middleware.UserID(c)
	if doc.VerifiedAt == nil {
		doc.VerifiedAt = &now
	}
	if req.AdminRemarks != "" {
		doc.AdminRemarks = req.AdminRemarks
	}

	if err := h.store.UpdateDocument(doc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update document",
		})
	}

	if req.Status == models.DocumentStatusVerified {
		h.notifier.Emit(doc.UserID, models.NotificationDocumentVerified,
			"Document Verified",
			fmt.Sprintf("Your document %s has been verified.", doc.Name),
			models.NotificationData{DocumentID: doc.DocumentID})
	} else {
		h.notifier.Emit(doc.UserID, models.NotificationDocumentRejected,
			"Document Rejected",
			fmt.Sprintf("Your document %s was rejected. %s", doc.Name, req.AdminRemarks),
			models.NotificationData{DocumentID: doc.DocumentID})
	}

	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Document %s successfully", req.Status),
		"document": doc,
	})
}

// Dashboard returns aggregate counts and the most recent applications
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	totalUsers, _ := h.store.CountUsers()
	totalApplications, _ := h.store.CountApplications()
	totalSchemes, _ := h.store.CountSchemes()
	pendingApplications, _ := h.store.CountApplicationsByStatus(models.StatusSubmitted)
	underReview, _ := h.store.CountApplicationsByStatus(models.StatusUnderReview)
	approvedApplications, _ := h.store.CountApplicationsByStatus(models.StatusApproved)
	recentUsers, _ := h.store.CountUsersSince(time.Now().AddDate(0, 0, -30))

	recent, err := h.store.GetAllApplications()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard data",
		})
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return c.JSON(fiber.Map{
		"stats": fiber.Map{
			"total_users":           totalUsers,
			"total_applications":    totalApplications,
			"total_schemes":         totalSchemes,
			"pending_applications":  pendingApplications,
			"under_review":          underReview,
			"approved_applications": approvedApplications,
			"recent_users":          recentUsers,
		},
		"recent_applications": recent,
	})
}

// ListUsers returns all registered users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.store.GetAllUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}
