package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
	"github.com/schemegenie/schemegenie-backend/internal/utils"
)

// LifecycleEngine owns the application status state machine: which
// transitions are legal for which actor, the timestamps stamped on each
// transition, and the notification emitted as a side effect. Every status
// write goes through here so that illegal transitions are rejected
// server-side instead of relying on which buttons a client renders.
type LifecycleEngine struct {
	store    storage.Store
	notifier *NotificationService
}

// NewLifecycleEngine creates a lifecycle engine
func NewLifecycleEngine(store storage.Store, notifier *NotificationService) *LifecycleEngine {
	return &LifecycleEngine{store: store, notifier: notifier}
}

// userTransitions are status changes a citizen may perform on their own
// application: submitting a draft, and resubmitting after an admin
// requested resubmission.
var userTransitions = map[string][]string{
	models.StatusDraft:                {models.StatusSubmitted},
	models.StatusRequiresResubmission: {models.StatusSubmitted},
}

// adminTransitions are status changes performed from the review surface.
// Skipping under_review on the way to a decision is allowed.
var adminTransitions = map[string][]string{
	models.StatusSubmitted:   {models.StatusUnderReview, models.StatusApproved, models.StatusRejected},
	models.StatusUnderReview: {models.StatusApproved, models.StatusRejected},
	models.StatusRejected:    {models.StatusRequiresResubmission},
	models.StatusApproved:    {models.StatusFinalApproved, models.StatusFinalRejected},
	// final_approved and final_rejected are terminal: no entry
}

var allStatuses = map[string]bool{
	models.StatusDraft:                true,
	models.StatusSubmitted:            true,
	models.StatusUnderReview:          true,
	models.StatusApproved:             true,
	models.StatusRejected:             true,
	models.StatusRequiresResubmission: true,
	models.StatusFinalApproved:        true,
	models.StatusFinalRejected:        true,
}

// TransitionRequest carries the inputs of one lifecycle transition
type TransitionRequest struct {
	TargetStatus         string
	RejectionReason      string
	AdminRemarks         string
	FinalApprovalRemarks string
	ActorID              string // admin performing the review, empty for user actions
}

// CanTransition reports whether the (current, target) pair is in the
// transition table for the given role.
func CanTransition(role, current, target string) bool {
	table := userTransitions
	if role == models.RoleAdmin {
		table = adminTransitions
	}
	for _, allowed := range table[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Transition validates and applies one status change, stamps the
// first-occurrence timestamps, persists the review annotations verbatim
// and emits a notification to the owning user.
func (e *LifecycleEngine) Transition(app *models.Application, role string, req TransitionRequest) error {
	if !allStatuses[req.TargetStatus] {
		return ErrUnknownStatus
	}

	if !CanTransition(role, app.Status, req.TargetStatus) {
		return ErrInvalidTransition
	}

	if req.TargetStatus == models.StatusRejected && strings.TrimSpace(req.RejectionReason) == "" {
		return ErrRejectionReasonRequired
	}

	now := time.Now()
	app.Status = req.TargetStatus

	// Stamps are set exactly once, on the first entry into each stage
	switch req.TargetStatus {
	case models.StatusSubmitted:
		if app.SubmittedAt == nil {
			app.SubmittedAt = &now
		}
		if app.TrackingID == "" {
			app.TrackingID = utils.NewTrackingID()
		}
	case models.StatusUnderReview:
		if app.ReviewedAt == nil {
			app.ReviewedAt = &now
		}
	case models.StatusFinalApproved:
		if app.FinalApprovedAt == nil {
			app.FinalApprovedAt = &now
		}
	case models.StatusFinalRejected:
		if app.FinalRejectedAt == nil {
			app.FinalRejectedAt = &now
		}
	}

	switch req.TargetStatus {
	case models.StatusApproved, models.StatusRejected, models.StatusFinalApproved, models.StatusFinalRejected:
		if app.CompletedAt == nil {
			app.CompletedAt = &now
		}
	}

	// Annotations are last-write-wins, no history log
	if req.RejectionReason != "" {
		app.RejectionReason = req.RejectionReason
	}
	if req.AdminRemarks != "" {
		app.AdminRemarks = req.AdminRemarks
	}
	if req.FinalApprovalRemarks != "" {
		app.FinalApprovalRemarks = req.FinalApprovalRemarks
	}
	if req.ActorID != "" {
		app.ReviewedBy = req.ActorID
	}

	if err := e.store.UpdateApplication(app); err != nil {
		return err
	}

	e.notifyStatusChange(app)
	return nil
}

// notifyStatusChange emits the notification describing the new status
func (e *LifecycleEngine) notifyStatusChange(app *models.Application) {
	schemeName := "the scheme"
	if scheme, err := e.store.GetScheme(app.SchemeID); err == nil {
		schemeName = scheme.Name
	}

	data := models.NotificationData{
		ApplicationID: app.ApplicationID,
		SchemeID:      app.SchemeID,
		TrackingID:    app.TrackingID,
	}

	var notificationType, title, message string

	switch app.Status {
	case models.StatusSubmitted:
		notificationType = models.NotificationApplicationSubmitted
		title = "Application Submitted Successfully"
		message = fmt.Sprintf("Your application for %s has been submitted and is awaiting review. Tracking ID: %s", schemeName, app.TrackingID)
	case models.StatusUnderReview:
		notificationType = models.NotificationApplicationUnderReview
		title = "Application Under Review"
		message = fmt.Sprintf("Your application for %s is now being reviewed by our team. Tracking ID: %s", schemeName, app.TrackingID)
	case models.StatusApproved:
		notificationType = models.NotificationApplicationApproved
		title = "Application Approved!"
		message = fmt.Sprintf("Congratulations! Your application for %s has been approved. Tracking ID: %s", schemeName, app.TrackingID)
	case models.StatusRejected:
		notificationType = models.NotificationApplicationRejected
		title = "Application Rejected"
		message = fmt.Sprintf("Unfortunately, your application for %s has been rejected. Reason: %s", schemeName, app.RejectionReason)
		data.RejectionReason = app.RejectionReason
	case models.StatusRequiresResubmission:
		notificationType = models.NotificationApplicationResubmission
		title = "Resubmission Requested"
		message = fmt.Sprintf("Your application for %s needs to be corrected and resubmitted. Please review the remarks and apply again.", schemeName)
	case models.StatusFinalApproved:
		notificationType = models.NotificationFinalApproved
		title = "Scheme Benefits Granted"
		message = fmt.Sprintf("Your application for %s has received final approval. Benefits will be processed shortly.", schemeName)
	case models.StatusFinalRejected:
		notificationType = models.NotificationFinalRejected
		title = "Final Decision: Not Granted"
		message = fmt.Sprintf("After the final review stage, your application for %s was not granted.", schemeName)
	default:
		return
	}

	e.notifier.Emit(app.UserID, notificationType, title, message, data)
}
