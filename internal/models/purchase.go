package models

import (
	"errors"
	"time"
)

// Purchase is an immutable record of a completed sale of one sweet line.
// Purchases are append-only: once a checkout commits they are never updated or
// deleted, and the total price is frozen at purchase time so later catalog
// price changes do not retroactively alter history.
type Purchase struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	SweetID    int       `json:"sweet_id" db:"sweet_id"`
	SweetName  string    `json:"sweet_name" db:"sweet_name"`
	Quantity   int       `json:"quantity" db:"quantity"`
	TotalPrice int       `json:"total_price" db:"total_price"` // in cents, frozen at purchase time
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PurchaseCreateRequest represents the data needed to record a purchase
type PurchaseCreateRequest struct {
	UserID     int    `json:"user_id"`
	SweetID    int    `json:"sweet_id"`
	SweetName  string `json:"sweet_name"`
	Quantity   int    `json:"quantity"`
	TotalPrice int    `json:"total_price"`
}

// Validate validates purchase creation data
func (req *PurchaseCreateRequest) Validate() error {
	if req.UserID <= 0 {
		return errors.New("user id is required")
	}
	if req.SweetID <= 0 {
		return errors.New("sweet id is required")
	}
	if req.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if req.TotalPrice < 0 {
		return errors.New("total price cannot be negative")
	}
	return nil
}

// TotalPriceInCurrency returns the total price in the main currency as a float
func (p *Purchase) TotalPriceInCurrency() float64 {
	return float64(p.TotalPrice) / 100.0
}
