package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/core"
	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	ledger *core.OrderLedger
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(ledger *core.OrderLedger) *OrderHandler {
	return &OrderHandler{ledger: ledger}
}

type placeOrderRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

// PlaceOrder finalizes the cart into a confirmed order.
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.ledger.PlaceOrder(models.Customer{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	}, req.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order placed",
		"data":    order,
	})
}

// ListOrders returns the ledger, newest first, paginated.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.ledger.Orders()
	if err != nil {
		return respondError(c, err)
	}

	pg := utils.ParsePagination(c)
	start, end := pg.Slice(len(orders))

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders[start:end],
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    len(orders),
		},
	})
}

// GetOrder returns a single order by id.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, found, err := h.ledger.Find(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "order not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}
