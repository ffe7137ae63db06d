package core

import (
	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/store"
)

// wishlistKey holds the persisted wishlist.
const wishlistKey = "bazaar_wishlist"

// Wishlist is the persisted set of saved-for-later catalog items, at most one
// entry per product id.
type Wishlist struct {
	store *store.Store
}

// NewWishlist constructs a Wishlist over the shared store.
func NewWishlist(st *store.Store) *Wishlist {
	return &Wishlist{store: st}
}

func (w *Wishlist) items() ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if _, err := w.store.Get(wishlistKey, &items); err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

// List returns the saved items in insertion order.
func (w *Wishlist) List() ([]models.CatalogItem, error) {
	return w.items()
}

// Add saves item unless it is already present.
func (w *Wishlist) Add(item models.CatalogItem) error {
	items, err := w.items()
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == item.ID {
			return nil
		}
	}
	items = append(items, item)
	if err := w.store.Put(wishlistKey, items); err != nil {
		return storageErr(err)
	}
	return nil
}

// Remove drops the item with the given product id.
func (w *Wishlist) Remove(productID int) error {
	items, err := w.items()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == productID {
			items = append(items[:i], items[i+1:]...)
			if err := w.store.Put(wishlistKey, items); err != nil {
				return storageErr(err)
			}
			return nil
		}
	}
	return nil
}

// MoveToCart adds the saved item to cart and removes it from the wishlist.
func (w *Wishlist) MoveToCart(cart *CartStore, productID int) error {
	items, err := w.items()
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == productID {
			cart.AddItem(it, 1)
			return w.Remove(productID)
		}
	}
	return stateErr("Item is not in the wishlist")
}
