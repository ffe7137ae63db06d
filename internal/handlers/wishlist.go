package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/core"
	"github.com/example/bazaar/internal/models"
)

// WishlistHandler manages saved-for-later items.
type WishlistHandler struct {
	wishlist *core.Wishlist
	cart     *core.CartStore
}

// NewWishlistHandler constructs a WishlistHandler.
func NewWishlistHandler(wishlist *core.Wishlist, cart *core.CartStore) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, cart: cart}
}

// List returns the saved items.
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.wishlist.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

type addWishlistRequest struct {
	Product models.CatalogItem `json:"product"`
}

// Add saves a product for later.
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	var req addWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Product.ID == 0 {
		return respondError(c, &core.Error{Kind: core.KindValidation, Message: "Product is required"})
	}

	if err := h.wishlist.Add(req.Product); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Saved to wishlist"})
}

// Remove drops a saved product.
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.wishlist.Remove(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Removed from wishlist"})
}

// MoveToCart moves a saved product into the cart.
func (h *WishlistHandler) MoveToCart(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.wishlist.MoveToCart(h.cart, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Moved to cart", "data": h.cart.Lines()})
}
