package models

// CatalogItem mirrors the shape served by the external product feed. The core
// never writes to the feed; items are carried into cart lines as snapshots.
type CatalogItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// CartLine is one product entry in the cart, keyed by product id. The cart
// holds at most one line per product id; repeated adds merge quantities.
type CartLine struct {
	ProductID int         `json:"product_id"`
	UnitPrice float64     `json:"unit_price"`
	Quantity  int         `json:"quantity"`
	Product   CatalogItem `json:"product"`
}

// LineTotal returns unit price times quantity in the feed's source currency.
func (l CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}
