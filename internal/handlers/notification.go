package handlers

import (
	"github.com/gofiber/fiber/v2"

	"codetidbit/internal/middleware"
	"codetidbit/internal/services"
)

// NotificationHandler handles the requesting user's notification feed.
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List returns the user's notifications, unread first then newest first
// GET /notifications
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.notifications.GetNotifications(
		c.Context(),
		middleware.RequestingUser(c),
		c.QueryInt("pageNumber", 1),
		c.QueryInt("pageSize", 0),
	)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(notifications)
}

// MarkRead marks one of the user's notifications as read
// POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	err := h.notifications.MarkRead(c.Context(), middleware.RequestingUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "notification read"})
}
