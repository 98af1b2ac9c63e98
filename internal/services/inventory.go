package services

import (
	"fmt"

	"sweetspot/internal/models"
)

// InventoryService handles admin-only catalog mutations: sweet CRUD and
// restocking. Authorization is checked once here, at the service boundary,
// rather than scattered across callers.
type InventoryService struct {
	sweets SweetStore
}

// NewInventoryService creates a new inventory service
func NewInventoryService(sweets SweetStore) *InventoryService {
	return &InventoryService{sweets: sweets}
}

// RestockResult represents the outcome of a restock
type RestockResult struct {
	SweetID     int `json:"sweet_id"`
	NewQuantity int `json:"new_quantity"`
}

// Restock increases a sweet's quantity. Admin only; the amount must be a
// positive integer. Goes through the same atomic ledger primitive as checkout,
// so restocks and in-flight checkouts serialize on the quantity column.
func (s *InventoryService) Restock(caller *models.User, sweetID, amount int) (*RestockResult, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("restock amount must be positive: %w", models.ErrInvalidInput)
	}

	newQuantity, err := s.sweets.Increment(sweetID, amount)
	if err != nil {
		return nil, err
	}

	return &RestockResult{SweetID: sweetID, NewQuantity: newQuantity}, nil
}

// CreateSweet adds a new sweet to the catalog. Admin only.
func (s *InventoryService) CreateSweet(caller *models.User, req *models.SweetCreateRequest) (*models.Sweet, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if req.ImageHint == "" {
		req.ImageHint = models.DeriveImageHint(req.Name)
	}
	return s.sweets.Create(req)
}

// UpdateSweet updates a sweet's fields, including a direct quantity set.
// Admin only; the new quantity must remain non-negative (request validation).
func (s *InventoryService) UpdateSweet(caller *models.User, sweetID int, req *models.SweetUpdateRequest) (*models.Sweet, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.sweets.Update(sweetID, req)
}

// DeleteSweet removes a sweet from the catalog. Admin only. Existing purchase
// records keep their denormalized name and price.
func (s *InventoryService) DeleteSweet(caller *models.User, sweetID int) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	return s.sweets.Delete(sweetID)
}

// SetSweetImage stores a new image URL for a sweet. Admin only.
func (s *InventoryService) SetSweetImage(caller *models.User, sweetID int, imageURL string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	sweet, err := s.sweets.GetByID(sweetID)
	if err != nil {
		return err
	}

	return s.sweets.UpdateImage(sweetID, imageURL, models.DeriveImageHint(sweet.Name))
}

func requireAdmin(caller *models.User) error {
	if caller == nil || !caller.IsAdmin() {
		return models.ErrUnauthorized
	}
	return nil
}
