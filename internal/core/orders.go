package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/store"
)

// ordersKey holds the persisted ledger, newest order first.
const ordersKey = "bazaar_orders_v1"

// casRetries bounds the prepend loop when another process updates the ledger
// between our read and write.
const casRetries = 5

// OrderLedger is the append-only, newest-first collection of finalized
// orders. Orders are created once at placement and never mutated.
type OrderLedger struct {
	cart  *CartStore
	store *store.Store
	now   func() time.Time
}

// NewOrderLedger constructs an OrderLedger over the shared store and the cart
// it snapshots at checkout.
func NewOrderLedger(cart *CartStore, st *store.Store) *OrderLedger {
	return &OrderLedger{cart: cart, store: st, now: time.Now}
}

// PlaceOrder finalizes the current cart into an immutable order. The cart
// must be non-empty. The order snapshot and the cart clear are observed as a
// single step: if persisting fails, the cart is restored untouched.
func (o *OrderLedger) PlaceOrder(customer models.Customer, paymentMethod string) (models.Order, error) {
	snapshot := o.cart.takeSnapshot()
	if len(snapshot) == 0 {
		return models.Order{}, stateErr("Cart is empty")
	}

	var raw float64
	for _, l := range snapshot {
		raw += l.LineTotal()
	}
	totalINR := raw * INRPerUSD

	order := models.Order{
		ID:            newOrderID(),
		CreatedAt:     o.now(),
		Items:         snapshot,
		TotalINR:      strconv.FormatFloat(totalINR, 'f', 0, 64),
		Customer:      customer,
		PaymentMethod: paymentMethod,
		Status:        models.OrderStatusConfirmed,
	}

	if err := o.prepend(order); err != nil {
		o.cart.restore(snapshot)
		return models.Order{}, err
	}
	return order, nil
}

// prepend inserts the order at the head of the persisted ledger using a
// compare-and-swap loop, so two processes sharing the store file cannot
// silently drop each other's orders.
func (o *OrderLedger) prepend(order models.Order) error {
	for i := 0; i < casRetries; i++ {
		var orders []models.Order
		version, _, err := o.store.GetVersioned(ordersKey, &orders)
		if err != nil {
			return storageErr(err)
		}

		updated := make([]models.Order, 0, len(orders)+1)
		updated = append(updated, order)
		updated = append(updated, orders...)

		ok, err := o.store.PutCAS(ordersKey, updated, version)
		if err != nil {
			return storageErr(err)
		}
		if ok {
			return nil
		}
	}
	return stateErr("Order ledger is busy, try again")
}

// Orders returns the persisted ledger, newest first.
func (o *OrderLedger) Orders() ([]models.Order, error) {
	var orders []models.Order
	if _, err := o.store.Get(ordersKey, &orders); err != nil {
		return nil, storageErr(err)
	}
	return orders, nil
}

// Find returns the order with the given id.
func (o *OrderLedger) Find(id string) (models.Order, bool, error) {
	orders, err := o.Orders()
	if err != nil {
		return models.Order{}, false, err
	}
	for _, ord := range orders {
		if ord.ID == id {
			return ord, true, nil
		}
	}
	return models.Order{}, false, nil
}

// newOrderID derives a collision-free order id from a random UUID. The old
// client sliced a timestamp, which collides across concurrent writers.
func newOrderID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:8])
}
