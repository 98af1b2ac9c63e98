package services

import (
	"sweetspot/internal/models"
	"sweetspot/internal/repositories"
)

// CatalogService handles read-only storefront browsing
type CatalogService struct {
	sweets SweetStore
}

// NewCatalogService creates a new catalog service
func NewCatalogService(sweets SweetStore) *CatalogService {
	return &CatalogService{sweets: sweets}
}

// ListSweets returns sweets matching the given search, filter, and sort options
func (s *CatalogService) ListSweets(filters repositories.SweetSearchFilters) ([]*models.Sweet, error) {
	return s.sweets.Search(filters)
}

// GetSweet returns a single sweet by id
func (s *CatalogService) GetSweet(id int) (*models.Sweet, error) {
	return s.sweets.GetByID(id)
}

// Categories returns the distinct catalog categories
func (s *CatalogService) Categories() ([]string, error) {
	return s.sweets.Categories()
}
