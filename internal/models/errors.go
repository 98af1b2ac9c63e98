package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrSweetNotFound     = errors.New("sweet not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnauthorized      = errors.New("unauthorized access")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateEntry    = errors.New("duplicate entry")
)

// InsufficientStockError reports a cart line that asked for more than is
// available. It unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	SweetID   int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for sweet %d (requested: %d, available: %d)",
		e.SweetID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// SweetUnavailableError reports a cart line referencing a sweet that no longer
// exists. It unwraps to ErrSweetNotFound.
type SweetUnavailableError struct {
	SweetID int
}

func (e *SweetUnavailableError) Error() string {
	return fmt.Sprintf("sweet %d is no longer available", e.SweetID)
}

func (e *SweetUnavailableError) Unwrap() error {
	return ErrSweetNotFound
}
