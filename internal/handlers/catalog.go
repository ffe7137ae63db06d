package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/bazaar/internal/services"
	"github.com/example/bazaar/internal/utils"
)

// CatalogHandler serves the read-only external product feed to the UI.
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts proxies the feed's product list, paginated.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	items, err := h.catalog.FetchProducts()
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "catalog feed unavailable")
	}

	pg := utils.ParsePagination(c)
	start, end := pg.Slice(len(items))

	return c.JSON(fiber.Map{
		"success": true,
		"data":    items[start:end],
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    len(items),
		},
	})
}

// GetProduct proxies a single feed product.
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	item, err := h.catalog.FetchProduct(id)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "catalog feed unavailable")
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}
