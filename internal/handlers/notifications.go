package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/core"
)

// NotificationHandler exposes the transient in-process notification feed.
type NotificationHandler struct {
	notifier *core.Notifier
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notifier *core.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// List returns current notifications.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.notifier.List()})
}

// Dismiss removes a notification before its auto-dismiss fires.
func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	h.notifier.Remove(c.Params("id"))
	return c.JSON(fiber.Map{"success": true})
}
