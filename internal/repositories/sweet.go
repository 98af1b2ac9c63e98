package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"sweetspot/internal/models"
)

// SweetRepository handles sweet data operations. It is the single source of
// truth for sellable quantity: all stock mutations go through TryDecrement,
// Increment, or a validated direct Update.
type SweetRepository struct {
	db *sql.DB
}

// NewSweetRepository creates a new sweet repository
func NewSweetRepository(db *sql.DB) *SweetRepository {
	return &SweetRepository{db: db}
}

// SweetSearchFilters represents filters for sweet search
type SweetSearchFilters struct {
	Query    string // Case-insensitive substring match on name
	Category string // Exact category match
	Limit    int    // Number of results to return
	Offset   int    // Number of results to skip
	SortBy   string // "name", "price", "quantity", "created_at"
	SortDesc bool   // Sort in descending order
}

const sweetColumns = "id, name, category, price, quantity, image_url, image_hint, created_at, updated_at"

func scanSweet(row interface{ Scan(...any) error }) (*models.Sweet, error) {
	sweet := &models.Sweet{}
	err := row.Scan(
		&sweet.ID,
		&sweet.Name,
		&sweet.Category,
		&sweet.Price,
		&sweet.Quantity,
		&sweet.ImageURL,
		&sweet.ImageHint,
		&sweet.CreatedAt,
		&sweet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sweet, nil
}

// Create creates a new sweet
func (r *SweetRepository) Create(req *models.SweetCreateRequest) (*models.Sweet, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sweets (name, category, price, quantity, image_url, image_hint, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + sweetColumns

	now := time.Now()
	sweet, err := scanSweet(r.db.QueryRow(
		query,
		req.Name,
		req.Category,
		req.Price,
		req.Quantity,
		req.ImageURL,
		req.ImageHint,
		now,
		now,
	))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("sweet %q: %w", req.Name, models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create sweet: %w", err)
	}

	return sweet, nil
}

// GetByID retrieves a sweet by ID
func (r *SweetRepository) GetByID(id int) (*models.Sweet, error) {
	query := `SELECT ` + sweetColumns + ` FROM sweets WHERE id = $1`

	sweet, err := scanSweet(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSweetNotFound
		}
		return nil, fmt.Errorf("failed to get sweet: %w", err)
	}

	return sweet, nil
}

// Search retrieves sweets matching the given filters
func (r *SweetRepository) Search(filters SweetSearchFilters) ([]*models.Sweet, error) {
	var conditions []string
	var args []any
	argIndex := 1

	if filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+filters.Query+"%")
		argIndex++
	}
	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, filters.Category)
		argIndex++
	}

	query := `SELECT ` + sweetColumns + ` FROM sweets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := "name"
	switch filters.SortBy {
	case "price", "quantity", "created_at", "name":
		sortBy = filters.SortBy
	}
	direction := "ASC"
	if filters.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search sweets: %w", err)
	}
	defer rows.Close()

	var sweets []*models.Sweet
	for rows.Next() {
		sweet, err := scanSweet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sweet: %w", err)
		}
		sweets = append(sweets, sweet)
	}

	return sweets, rows.Err()
}

// Categories returns the distinct set of categories currently in the catalog
func (r *SweetRepository) Categories() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT category FROM sweets ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Update updates a sweet's fields directly. The quantity set here must still
// be non-negative, enforced by request validation.
func (r *SweetRepository) Update(id int, req *models.SweetUpdateRequest) (*models.Sweet, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE sweets
		SET name = $2, category = $3, price = $4, quantity = $5, image_url = $6, image_hint = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + sweetColumns

	sweet, err := scanSweet(r.db.QueryRow(
		query,
		id,
		req.Name,
		req.Category,
		req.Price,
		req.Quantity,
		req.ImageURL,
		req.ImageHint,
		time.Now(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrSweetNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("sweet %q: %w", req.Name, models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to update sweet: %w", err)
	}

	return sweet, nil
}

// UpdateImage sets the image URL and hint for a sweet
func (r *SweetRepository) UpdateImage(id int, imageURL, imageHint string) error {
	result, err := r.db.Exec(
		`UPDATE sweets SET image_url = $2, image_hint = $3, updated_at = $4 WHERE id = $1`,
		id, imageURL, imageHint, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update sweet image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrSweetNotFound
	}

	return nil
}

// Delete deletes a sweet
func (r *SweetRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM sweets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sweet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrSweetNotFound
	}

	return nil
}

// TryDecrement atomically decrements a sweet's quantity if enough stock is
// available. The availability check and the subtraction happen in a single
// conditional UPDATE, so two concurrent decrements can never both succeed
// when their combined amount exceeds the available stock.
func (r *SweetRepository) TryDecrement(id, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("decrement amount must be positive: %w", models.ErrInvalidInput)
	}

	var newQuantity int
	err := r.db.QueryRow(`
		UPDATE sweets
		SET quantity = quantity - $2, updated_at = $3
		WHERE id = $1 AND quantity >= $2
		RETURNING quantity`, id, amount, time.Now(),
	).Scan(&newQuantity)

	if err == nil {
		return newQuantity, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to decrement stock: %w", err)
	}

	// The conditional update matched no row: either the sweet is gone or
	// there was not enough stock. Look it up to tell the two apart.
	sweet, getErr := r.GetByID(id)
	if getErr != nil {
		return 0, &models.SweetUnavailableError{SweetID: id}
	}
	return 0, &models.InsufficientStockError{SweetID: id, Requested: amount, Available: sweet.Quantity}
}

// Increment atomically increases a sweet's quantity (admin restock)
func (r *SweetRepository) Increment(id, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("increment amount must be positive: %w", models.ErrInvalidInput)
	}

	var newQuantity int
	err := r.db.QueryRow(`
		UPDATE sweets
		SET quantity = quantity + $2, updated_at = $3
		WHERE id = $1
		RETURNING quantity`, id, amount, time.Now(),
	).Scan(&newQuantity)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrSweetNotFound
		}
		return 0, fmt.Errorf("failed to increment stock: %w", err)
	}

	return newQuantity, nil
}
