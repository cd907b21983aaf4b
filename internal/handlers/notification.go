package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/schemegenie/schemegenie-backend/internal/middleware"
	"github.com/schemegenie/schemegenie-backend/internal/services"
	"github.com/schemegenie/schemegenie-backend/internal/storage"
)

// NotificationHandler handles the polling notification surface
type NotificationHandler struct {
	store    storage.Store
	notifier *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(store storage.Store, notifier *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		store:    store,
		notifier: notifier,
	}
}

// ListNotifications returns the user's most recent notifications (up to 50)
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	notifications, err := h.store.GetNotificationsByUser(middleware.UserID(c), 50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve notifications",
		})
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkRead marks one notification as read; a no-op when already read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	n, err := h.notifier.MarkRead(middleware.UserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotificationForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Not authorized to update this notification",
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Notification not found",
		})
	}

	return c.JSON(n)
}

// MarkAllRead marks every unread notification for the user as read
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.notifier.MarkAllRead(middleware.UserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notifications",
		})
	}

	return c.JSON(fiber.Map{
		"message": "All notifications marked as read",
	})
}

// UnreadCount returns the unread badge count polled by the client
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	count, err := h.notifier.UnreadCount(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get unread count",
		})
	}

	return c.JSON(fiber.Map{
		"count": count,
	})
}
