package services

import "errors"

var (
	// ErrUnknownStatus is returned for a target status outside the enum
	ErrUnknownStatus = errors.New("unknown status")

	// ErrInvalidTransition is returned when the (current, target) pair is
	// not in the transition table for the acting role
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRejectionReasonRequired is returned for a rejected transition
	// with an empty or whitespace-only reason
	ErrRejectionReasonRequired = errors.New("rejection reason is required")

	// ErrNotificationForbidden is returned when a user touches a
	// notification they do not own
	ErrNotificationForbidden = errors.New("notification does not belong to user")
)
