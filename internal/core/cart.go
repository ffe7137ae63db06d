package core

import (
	"sync"

	"github.com/example/bazaar/internal/models"
)

// INRPerUSD converts feed prices (USD) into the display currency. Every
// consumer of a converted total — cart view, checkout summary, receipt —
// must go through this one constant.
const INRPerUSD = 85.0

// CartStore is the mutable pre-checkout line collection. Lines are keyed by
// product id, at most one line per id, in first-insertion order. The cart is
// process-local state; only placed orders persist.
type CartStore struct {
	mu    sync.Mutex
	lines []models.CartLine
}

// NewCartStore constructs an empty cart.
func NewCartStore() *CartStore {
	return &CartStore{}
}

// AddItem merges qty into an existing line for the product or appends a new
// one. A qty below one counts as a single unit, matching the add-to-cart
// buttons that omit a quantity.
func (c *CartStore) AddItem(product models.CatalogItem, qty int) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += qty
			return
		}
	}

	c.lines = append(c.lines, models.CartLine{
		ProductID: product.ID,
		UnitPrice: product.Price,
		Quantity:  qty,
		Product:   product,
	})
}

// RemoveItem deletes the line for productID if present.
func (c *CartStore) RemoveItem(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the quantity of the line for productID. A quantity
// below one removes the line; the quantities-start-at-one invariant never
// admits a zero-quantity line.
func (c *CartStore) SetQuantity(productID, qty int) {
	if qty < 1 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Clear empties the cart.
func (c *CartStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the current cart contents in insertion order.
func (c *CartStore) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *CartStore) snapshotLocked() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len reports the number of lines in the cart.
func (c *CartStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Total sums unit price times quantity over all lines. With inINR set the
// result is converted through INRPerUSD.
func (c *CartStore) Total(inINR bool) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var raw float64
	for _, l := range c.lines {
		raw += l.LineTotal()
	}
	if inINR {
		return raw * INRPerUSD
	}
	return raw
}

// takeSnapshot atomically copies and clears the cart, for order placement.
// restore puts a snapshot back when the order write fails.
func (c *CartStore) takeSnapshot() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.snapshotLocked()
	c.lines = nil
	return snapshot
}

func (c *CartStore) restore(lines []models.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = lines
}
