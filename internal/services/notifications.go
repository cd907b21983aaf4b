package services

import (
	"log"

	"github.com/schemegenie/schemegenie-backend/internal/models"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// NotificationService records per-user notifications as a side effect of
// status transitions. It has no push mechanism; clients poll the unread count.
type NotificationService struct {
	store storage.Store
}

// NewNotificationService creates a new notification service
func NewNotificationService(store storage.Store) *NotificationService {
	return &NotificationService{store: store}
}

// Emit creates an unread notification for the user. A failure to record a
// notification never fails the triggering request; it is logged and dropped.
func (s *NotificationService) Emit(userID, notificationType, title, message string, data models.NotificationData) *models.Notification {
	n := &models.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Data:    data,
	}

	created, err := s.store.CreateNotification(n)
	if err != nil {
		log.Printf("Failed to create notification for user %s: %v", userID, err)
		return nil
	}
	return created
}

// MarkRead marks one notification as read. Calling it on an already-read
// notification is a no-op, not an error.
func (s *NotificationService) MarkRead(userID, notificationID string) (*models.Notification, error) {
	n, err := s.store.GetNotification(notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrNotificationForbidden
	}
	if n.Read {
		return n, nil
	}

	n.Read = true
	if err := s.store.UpdateNotification(n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead marks every unread notification for the user as read.
// Idempotent under repeated calls.
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.store.MarkAllNotificationsRead(userID)
}

// UnreadCount returns the number of unread notifications for the user
func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	return s.store.CountUnreadNotifications(userID)
}
