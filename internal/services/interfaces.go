package services

import (
	"time"

	"sweetspot/internal/models"
	"sweetspot/internal/repositories"
)

// StockLedger is the single source of truth for sellable quantity. Both stock
// mutations are atomic conditional updates: TryDecrement must never let two
// concurrent callers both succeed when their combined amount exceeds the
// available quantity.
type StockLedger interface {
	GetByID(id int) (*models.Sweet, error)
	TryDecrement(id, amount int) (int, error)
	Increment(id, amount int) (int, error)
}

// SweetStore extends the stock ledger with catalog operations
type SweetStore interface {
	StockLedger
	Create(req *models.SweetCreateRequest) (*models.Sweet, error)
	Update(id int, req *models.SweetUpdateRequest) (*models.Sweet, error)
	UpdateImage(id int, imageURL, imageHint string) error
	Delete(id int) error
	Search(filters repositories.SweetSearchFilters) ([]*models.Sweet, error)
	Categories() ([]string, error)
}

// PurchaseRecorder is the append-only store of purchase records. Remove exists
// only so a failed checkout can take back records it appended in the same
// attempt; completed history is never mutated.
type PurchaseRecorder interface {
	Record(req *models.PurchaseCreateRequest) (*models.Purchase, error)
	Remove(id int) error
	GetByID(id int) (*models.Purchase, error)
	GetByUserID(userID int) ([]*models.Purchase, error)
	GetAll() ([]*models.Purchase, error)
}

// UserStore handles user accounts and server-side sessions
type UserStore interface {
	Create(req *models.UserCreateRequest) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	CreateSession(userID int, sessionID string, expiresAt time.Time) error
	GetUserBySession(sessionID string) (*models.User, error)
	DeleteSession(sessionID string) error
	DeleteExpiredSessions() error
}
