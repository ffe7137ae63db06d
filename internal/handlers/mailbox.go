package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/core"
)

// MailboxHandler exposes the mock SMS inbox for a phone number.
type MailboxHandler struct {
	mailbox *core.Mailbox
}

// NewMailboxHandler constructs a MailboxHandler.
func NewMailboxHandler(mailbox *core.Mailbox) *MailboxHandler {
	return &MailboxHandler{mailbox: mailbox}
}

// Read returns the pending message for the phone, or null when the slot is
// empty. Viewers poll this endpoint; the mailbox is a one-slot simulation.
func (h *MailboxHandler) Read(c *fiber.Ctx) error {
	msg, ok, err := h.mailbox.Read(c.Params("phone"))
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.JSON(fiber.Map{"success": true, "data": nil})
	}
	return c.JSON(fiber.Map{"success": true, "data": msg})
}

// Clear deletes the pending message for the phone.
func (h *MailboxHandler) Clear(c *fiber.Ctx) error {
	if err := h.mailbox.Clear(c.Params("phone")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Mailbox cleared"})
}
