package services

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"sweetspot/internal/models"
)

// CheckoutService turns a cart into either a fully-applied state change or no
// change at all. It validates every line before mutating anything, then applies
// per-line conditional decrements; if any decrement fails because stock moved
// since validation, every decrement already applied in the attempt is
// compensated before the failure is returned. No failure path leaves a partial
// decrement behind.
type CheckoutService struct {
	ledger   StockLedger
	recorder PurchaseRecorder
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(ledger StockLedger, recorder PurchaseRecorder) *CheckoutService {
	return &CheckoutService{
		ledger:   ledger,
		recorder: recorder,
	}
}

// CheckoutResult represents the outcome of a successful checkout
type CheckoutResult struct {
	Purchases   []*models.Purchase `json:"purchases"`
	TotalAmount int                `json:"total_amount"` // in cents
}

// checkoutLine is a cart line paired with the sweet state seen at validation
type checkoutLine struct {
	sweetID   int
	quantity  int
	unitPrice int
	sweetName string
}

// Checkout applies the given cart lines against stock for the given user.
// Lines are merged per sweet and processed in ascending sweet-id order so
// concurrent checkouts touching overlapping sweets decrement in a consistent
// order. Checkout is intentionally not idempotent: submitting the same cart
// twice records two independent sets of purchases and decrements stock twice.
func (s *CheckoutService) Checkout(userID int, lines []models.CartLine) (*CheckoutResult, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id is required: %w", models.ErrInvalidInput)
	}
	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	merged, err := mergeLines(lines)
	if err != nil {
		return nil, err
	}

	// Phase 1: validate every line and snapshot unit prices. Nothing has
	// been mutated yet, so any failure here is side-effect free.
	validated := make([]checkoutLine, 0, len(merged))
	for _, line := range merged {
		sweet, err := s.ledger.GetByID(line.SweetID)
		if err != nil {
			if errors.Is(err, models.ErrSweetNotFound) {
				return nil, &models.SweetUnavailableError{SweetID: line.SweetID}
			}
			return nil, fmt.Errorf("failed to validate cart line: %w", err)
		}
		if sweet.Quantity < line.Quantity {
			return nil, &models.InsufficientStockError{
				SweetID:   line.SweetID,
				Requested: line.Quantity,
				Available: sweet.Quantity,
			}
		}
		validated = append(validated, checkoutLine{
			sweetID:   line.SweetID,
			quantity:  line.Quantity,
			unitPrice: sweet.Price,
			sweetName: sweet.Name,
		})
	}

	// Phase 2: apply conditional decrements. Stock may have moved since
	// validation; a failed decrement aborts the attempt and compensates
	// every line already applied.
	applied := 0
	for i, line := range validated {
		if _, err := s.ledger.TryDecrement(line.sweetID, line.quantity); err != nil {
			s.compensate(validated[:i])
			return nil, err
		}
		applied = i + 1
	}

	// Phase 3: record one purchase per line with the frozen total. A failure
	// here aborts the whole checkout: decrements are compensated and the
	// purchases already appended in this attempt are taken back, so no
	// partial records survive a failed call.
	purchases := make([]*models.Purchase, 0, len(validated))
	total := 0
	for _, line := range validated {
		purchase, err := s.recorder.Record(&models.PurchaseCreateRequest{
			UserID:     userID,
			SweetID:    line.sweetID,
			SweetName:  line.sweetName,
			Quantity:   line.quantity,
			TotalPrice: line.unitPrice * line.quantity,
		})
		if err != nil {
			s.compensate(validated[:applied])
			s.removePurchases(purchases)
			return nil, fmt.Errorf("failed to record purchase: %w", err)
		}
		purchases = append(purchases, purchase)
		total += purchase.TotalPrice
	}

	return &CheckoutResult{Purchases: purchases, TotalAmount: total}, nil
}

// compensate rolls back decrements already applied in a failed attempt
func (s *CheckoutService) compensate(lines []checkoutLine) {
	for _, line := range lines {
		if _, err := s.ledger.Increment(line.sweetID, line.quantity); err != nil {
			// The sweet may have been deleted mid-flight. Nothing
			// more can be done for this line; log and keep going so
			// the remaining lines are still rolled back.
			log.Printf("checkout: failed to compensate %d units of sweet %d: %v",
				line.quantity, line.sweetID, err)
		}
	}
}

// removePurchases takes back records appended by a checkout attempt that
// failed part-way through recording
func (s *CheckoutService) removePurchases(purchases []*models.Purchase) {
	for _, purchase := range purchases {
		if err := s.recorder.Remove(purchase.ID); err != nil {
			log.Printf("checkout: failed to remove purchase %d after aborted checkout: %v",
				purchase.ID, err)
		}
	}
}

// mergeLines combines duplicate lines per sweet and sorts them by sweet id
func mergeLines(lines []models.CartLine) ([]models.CartLine, error) {
	quantities := make(map[int]int, len(lines))
	for _, line := range lines {
		if line.SweetID <= 0 {
			return nil, fmt.Errorf("invalid sweet id %d: %w", line.SweetID, models.ErrInvalidInput)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("invalid quantity %d for sweet %d: %w",
				line.Quantity, line.SweetID, models.ErrInvalidInput)
		}
		quantities[line.SweetID] += line.Quantity
	}

	merged := make([]models.CartLine, 0, len(quantities))
	for sweetID, quantity := range quantities {
		merged = append(merged, models.CartLine{SweetID: sweetID, Quantity: quantity})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].SweetID < merged[j].SweetID })

	return merged, nil
}
