package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/core"
	"github.com/example/bazaar/internal/models"
)

// CartHandler manages cart endpoints.
type CartHandler struct {
	cart *core.CartStore
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cart *core.CartStore) *CartHandler {
	return &CartHandler{cart: cart}
}

// GetCart returns the current lines and both currency totals.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"items":     h.cart.Lines(),
			"total_usd": h.cart.Total(false),
			"total_inr": h.cart.Total(true),
		},
	})
}

type addItemRequest struct {
	Product  models.CatalogItem `json:"product"`
	Quantity int                `json:"quantity"`
}

// AddItem adds a product to the cart, merging quantities for a product
// already present.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Product.ID == 0 {
		return respondError(c, &core.Error{Kind: core.KindValidation, Message: "Product is required"})
	}

	h.cart.AddItem(req.Product, req.Quantity)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Added to cart",
		"data":    h.cart.Lines(),
	})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	h.cart.SetQuantity(productID, req.Quantity)
	return c.JSON(fiber.Map{"success": true, "data": h.cart.Lines()})
}

// RemoveItem deletes a line by product id.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	h.cart.RemoveItem(productID)
	return c.JSON(fiber.Map{"success": true, "data": h.cart.Lines()})
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	h.cart.Clear()
	return c.JSON(fiber.Map{"success": true, "message": "Cart cleared"})
}
