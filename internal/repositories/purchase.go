package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sweetspot/internal/models"
)

// PurchaseRepository handles purchase history data operations. The purchases
// table is append-only: records are created at checkout and never mutated.
type PurchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *sql.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

const purchaseColumns = "id, user_id, sweet_id, sweet_name, quantity, total_price, created_at"

func scanPurchase(row interface{ Scan(...any) error }) (*models.Purchase, error) {
	purchase := &models.Purchase{}
	err := row.Scan(
		&purchase.ID,
		&purchase.UserID,
		&purchase.SweetID,
		&purchase.SweetName,
		&purchase.Quantity,
		&purchase.TotalPrice,
		&purchase.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// Record appends a purchase record, assigning its id and timestamp
func (r *PurchaseRepository) Record(req *models.PurchaseCreateRequest) (*models.Purchase, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO purchases (user_id, sweet_id, sweet_name, quantity, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + purchaseColumns

	purchase, err := scanPurchase(r.db.QueryRow(
		query,
		req.UserID,
		req.SweetID,
		req.SweetName,
		req.Quantity,
		req.TotalPrice,
		time.Now(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	return purchase, nil
}

// Remove deletes a purchase record. This exists solely so the checkout
// coordinator can take back records appended by an attempt that failed before
// completing; completed purchase history is never removed.
func (r *PurchaseRepository) Remove(id int) error {
	result, err := r.db.Exec(`DELETE FROM purchases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to remove purchase: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrPurchaseNotFound
	}

	return nil
}

// GetByID retrieves a purchase by ID
func (r *PurchaseRepository) GetByID(id int) (*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`

	purchase, err := scanPurchase(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}

	return purchase, nil
}

// GetByUserID retrieves all purchases made by a user, newest first
func (r *PurchaseRepository) GetByUserID(userID int) ([]*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases for user: %w", err)
	}
	defer rows.Close()

	return collectPurchases(rows)
}

// GetAll retrieves every purchase record, newest first (admin view)
func (r *PurchaseRepository) GetAll() ([]*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	defer rows.Close()

	return collectPurchases(rows)
}

func collectPurchases(rows *sql.Rows) ([]*models.Purchase, error) {
	var purchases []*models.Purchase
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, purchase)
	}
	return purchases, rows.Err()
}
