package services

import (
	"sweetspot/internal/models"
)

// HistoryService exposes purchase history: users see their own purchases,
// admins can see everything.
type HistoryService struct {
	recorder PurchaseRecorder
}

// NewHistoryService creates a new purchase history service
func NewHistoryService(recorder PurchaseRecorder) *HistoryService {
	return &HistoryService{recorder: recorder}
}

// UserPurchases returns the caller's own purchase history
func (s *HistoryService) UserPurchases(caller *models.User) ([]*models.Purchase, error) {
	if caller == nil {
		return nil, models.ErrUnauthorized
	}
	return s.recorder.GetByUserID(caller.ID)
}

// GetPurchase returns a single purchase record. Users can only read their own
// records; a purchase owned by someone else reads as not found rather than
// revealing that it exists.
func (s *HistoryService) GetPurchase(caller *models.User, id int) (*models.Purchase, error) {
	if caller == nil {
		return nil, models.ErrUnauthorized
	}

	purchase, err := s.recorder.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase.UserID != caller.ID && !caller.IsAdmin() {
		return nil, models.ErrPurchaseNotFound
	}
	return purchase, nil
}

// AllPurchases returns every purchase record. Admin only.
func (s *HistoryService) AllPurchases(caller *models.User) ([]*models.Purchase, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.recorder.GetAll()
}
