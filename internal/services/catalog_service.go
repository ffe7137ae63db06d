package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/bazaar/internal/models"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

// CatalogService reads the external product feed. The feed is a read-only
// collaborator: the engine never writes to it and keeps no caching contract
// over it.
type CatalogService struct {
	feedURL string
}

// NewCatalogService creates a CatalogService for the given feed URL.
func NewCatalogService(feedURL string) *CatalogService {
	return &CatalogService{feedURL: feedURL}
}

// FetchProducts returns the current catalog items from the feed.
func (s *CatalogService) FetchProducts() ([]models.CatalogItem, error) {
	resp, err := httpClient.Get(s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog feed returned status %d", resp.StatusCode)
	}

	var items []models.CatalogItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return items, nil
}

// FetchProduct returns a single catalog item by id.
func (s *CatalogService) FetchProduct(id int) (models.CatalogItem, error) {
	resp, err := httpClient.Get(fmt.Sprintf("%s/%d", s.feedURL, id))
	if err != nil {
		return models.CatalogItem{}, fmt.Errorf("fetch product: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.CatalogItem{}, fmt.Errorf("catalog feed returned status %d", resp.StatusCode)
	}

	var item models.CatalogItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return models.CatalogItem{}, fmt.Errorf("decode product: %w", err)
	}
	return item, nil
}
