package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/bazaar/internal/models"
	"github.com/example/bazaar/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testProduct(id int, price float64) models.CatalogItem {
	return models.CatalogItem{
		ID:       id,
		Title:    "Test Product",
		Price:    price,
		Category: "electronics",
	}
}
