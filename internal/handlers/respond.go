package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/core"
)

// respondError translates the engine's error taxonomy into the caller-facing
// envelope. Every failure is recoverable; the message is shown verbatim.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch core.KindOf(err) {
	case core.KindValidation:
		status = fiber.StatusBadRequest
	case core.KindAuth:
		status = fiber.StatusUnauthorized
	case core.KindConflict:
		status = fiber.StatusConflict
	case core.KindState:
		status = fiber.StatusUnprocessableEntity
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}
