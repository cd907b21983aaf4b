package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/schemegenie/schemegenie-backend/internal/middleware"
	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/services"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// ApplicationHandler handles citizen-facing application requests
type ApplicationHandler struct {
	store     storage.Store
	lifecycle *services.LifecycleEngine
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(store storage.Store, lifecycle *services.LifecycleEngine) *ApplicationHandler {
	return &ApplicationHandler{
		store:     store,
		lifecycle: lifecycle,
	}
}

// ListApplications returns the authenticated user's applications, newest first
func (h *ApplicationHandler) ListApplications(c *fiber.Ctx) error {
	apps, err := h.store.GetApplicationsByUser(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve applications",
		})
	}

	return c.JSON(fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// CreateApplication creates a new application for a scheme. Status is
// "draft" unless the caller asks for an immediate "submitted". A second
// active application for the same scheme is rejected.
func (h *ApplicationHandler) CreateApplication(c *fiber.Ctx) error {
	var req struct {
		SchemeID        string                 `json:"scheme_id"`
		ApplicationData models.ApplicationData `json:"application_data"`
		Status          string                 `json:"status"`
		Priority        string                 `json:"priority"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.SchemeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Scheme ID is required",
		})
	}

	if req.Status != "" && req.Status != models.StatusDraft && req.Status != models.StatusSubmitted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be 'draft' or 'submitted'",
		})
	}

	scheme, err := h.store.GetScheme(req.SchemeID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Scheme not found",
		})
	}

	userID := middleware.UserID(c)

	if _, err := h.store.GetActiveApplication(userID, scheme.SchemeID); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Already applied for this scheme",
		})
	}

	app := &models.Application{
		UserID:                userID,
		SchemeID:              scheme.SchemeID,
		ApplicationData:       req.ApplicationData,
		Status:                models.StatusDraft,
		EstimatedApprovalDays: scheme.EstimatedApprovalDays(),
		Priority:              req.Priority,
	}

	created, err := h.store.CreateApplication(app)
	if err != nil {
		if err.Error() == "application already exists" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Already applied for this scheme",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create application",
		})
	}

	// Immediate submission goes through the lifecycle engine so the
	// tracking ID, timestamp, and notification behave the same as a
	// draft submitted later.
	if req.Status == models.StatusSubmitted {
		err := h.lifecycle.Transition(created, models.RoleUser, services.TransitionRequest{
			TargetStatus: models.StatusSubmitted,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to submit application",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Application created successfully",
		"application": created,
	})
}

// GetApplication returns one application; visible to its owner or an admin
func (h *ApplicationHandler) GetApplication(c *fiber.Ctx) error {
	app, err := h.store.GetApplication(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	if middleware.Role(c) != models.RoleAdmin && app.UserID != middleware.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to view this application",
		})
	}

	return c.JSON(app)
}

// UpdateApplication lets the owner edit the form data and perform
// user-side lifecycle transitions (submit a draft, resubmit)
func (h *ApplicationHandler) UpdateApplication(c *fiber.Ctx) error {
	var req struct {
		ApplicationData *models.ApplicationData `json:"application_data"`
		Status          string                  `json:"status"`
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

	if app.UserID != middleware.UserID(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Not authorized to update this application",
		})
	}

	if req.ApplicationData != nil {
		app.ApplicationData = *req.ApplicationData
	}

	if req.Status != "" && req.Status != app.Status {
		err := h.lifecycle.Transition(app, models.RoleUser, services.TransitionRequest{
			TargetStatus: req.Status,
		})
		if err != nil {
			return transitionError(c, err)
		}
	} else if err := h.store.UpdateApplication(app); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update application",
		})
	}

	return c.JSON(app)
}

// TrackApplication looks up the owner's application by tracking ID
func (h *ApplicationHandler) TrackApplication(c *fiber.Ctx) error {
	app, err := h.store.GetApplicationByTrackingID(c.Params("trackingId"))
	if err != nil || app.UserID != middleware.UserID(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	return c.JSON(app)
}

// PublicTrackApplication is the unauthenticated status lookup. Only
// status and timing fields are exposed, never the form data.
func (h *ApplicationHandler) PublicTrackApplication(c *fiber.Ctx) error {
	app, err := h.store.GetApplicationByTrackingID(c.Params("trackingId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	response := fiber.Map{
		"tracking_id":             app.TrackingID,
		"status":                  app.Status,
		"created_at":              app.CreatedAt,
		"submitted_at":            app.SubmittedAt,
		"reviewed_at":             app.ReviewedAt,
		"completed_at":            app.CompletedAt,
		"estimated_approval_days": app.EstimatedApprovalDays,
		"rejection_reason":        app.RejectionReason,
		"admin_remarks":           app.AdminRemarks,
	}

	if scheme, err := h.store.GetScheme(app.SchemeID); err == nil {
		response["scheme"] = fiber.Map{
			"name":     scheme.Name,
			"category": scheme.Category,
		}
	}

	return c.JSON(response)
}

// transitionError maps lifecycle engine errors to HTTP responses
func transitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrRejectionReasonRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rejection reason is required",
		})
	case errors.Is(err, services.ErrUnknownStatus), errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status transition",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update application status",
		})
	}
}
