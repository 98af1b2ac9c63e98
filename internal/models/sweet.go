package models

import (
	"errors"
	"strings"
	"time"
)

// Sweet represents a sellable catalog item with a live stock quantity
type Sweet struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Category  string    `json:"category" db:"category"`
	Price     int       `json:"price" db:"price"` // Price in cents
	Quantity  int       `json:"quantity" db:"quantity"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	ImageHint string    `json:"image_hint" db:"image_hint"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SweetCreateRequest represents the data needed to create a new sweet
type SweetCreateRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url"`
	ImageHint string `json:"image_hint"`
}

// SweetUpdateRequest represents the data that can be updated for a sweet
type SweetUpdateRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url"`
	ImageHint string `json:"image_hint"`
}

// Validate validates the sweet data
func (s *Sweet) Validate() error {
	if err := validateSweetName(s.Name); err != nil {
		return err
	}
	if err := validateSweetCategory(s.Category); err != nil {
		return err
	}
	if err := validateSweetPrice(s.Price); err != nil {
		return err
	}
	return validateSweetQuantity(s.Quantity)
}

// Validate validates sweet creation data
func (req *SweetCreateRequest) Validate() error {
	if err := validateSweetName(req.Name); err != nil {
		return err
	}
	if err := validateSweetCategory(req.Category); err != nil {
		return err
	}
	if err := validateSweetPrice(req.Price); err != nil {
		return err
	}
	return validateSweetQuantity(req.Quantity)
}

// Validate validates sweet update data
func (req *SweetUpdateRequest) Validate() error {
	if err := validateSweetName(req.Name); err != nil {
		return err
	}
	if err := validateSweetCategory(req.Category); err != nil {
		return err
	}
	if err := validateSweetPrice(req.Price); err != nil {
		return err
	}
	return validateSweetQuantity(req.Quantity)
}

func validateSweetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}
	if len(name) > 100 {
		return errors.New("name must be less than 100 characters")
	}
	return nil
}

func validateSweetCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return errors.New("category is required")
	}
	if len(category) > 50 {
		return errors.New("category must be less than 50 characters")
	}
	return nil
}

func validateSweetPrice(price int) error {
	if price <= 0 {
		return errors.New("price must be positive")
	}
	// Maximum price of $10,000 (1,000,000 cents)
	if price > 1000000 {
		return errors.New("price cannot exceed $10,000")
	}
	return nil
}

func validateSweetQuantity(quantity int) error {
	if quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

// InStock returns true if at least one unit is available
func (s *Sweet) InStock() bool {
	return s.Quantity > 0
}

// PriceInCurrency returns the price in the main currency as a float
func (s *Sweet) PriceInCurrency() float64 {
	return float64(s.Price) / 100.0
}

// DeriveImageHint builds a short hint from the sweet name, used as alt text
// for generated images (first two words, lowercased).
func DeriveImageHint(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}
