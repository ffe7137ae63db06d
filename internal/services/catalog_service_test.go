package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Backpack", "price": 109.95, "category": "men's clothing", "image": "http://img/1.jpg", "description": "Fits laptops"},
			{"id": 2, "title": "T-Shirt", "price": 22.3, "category": "men's clothing", "image": "http://img/2.jpg", "description": "Slim fit"}
		]`))
	}))
	defer srv.Close()

	svc := NewCatalogService(srv.URL)
	items, err := svc.FetchProducts()
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0].ID)
	require.Equal(t, "Backpack", items[0].Title)
	require.InDelta(t, 109.95, items[0].Price, 1e-9)
}

func TestFetchProductsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewCatalogService(srv.URL).FetchProducts()
	require.Error(t, err)
}

func TestFetchProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/5", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 5, "title": "Ring", "price": 695, "category": "jewelery"}`))
	}))
	defer srv.Close()

	item, err := NewCatalogService(srv.URL).FetchProduct(5)
	require.NoError(t, err)
	require.Equal(t, 5, item.ID)
	require.Equal(t, "Ring", item.Title)
}
