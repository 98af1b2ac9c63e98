package handlers

import (
	"context"
	"net/http"
	"time"

	"sweetspot/internal/middleware"
	"sweetspot/internal/models"
	"sweetspot/internal/repositories"
)

// testSweetStore is an in-memory SweetStore for handler tests
type testSweetStore struct {
	sweets map[int]*models.Sweet
	nextID int
}

func newTestSweetStore(sweets ...*models.Sweet) *testSweetStore {
	store := &testSweetStore{sweets: make(map[int]*models.Sweet), nextID: 1}
	for _, sweet := range sweets {
		store.sweets[sweet.ID] = sweet
		if sweet.ID >= store.nextID {
			store.nextID = sweet.ID + 1
		}
	}
	return store
}

func (s *testSweetStore) GetByID(id int) (*models.Sweet, error) {
	sweet, ok := s.sweets[id]
	if !ok {
		return nil, models.ErrSweetNotFound
	}
	copied := *sweet
	return &copied, nil
}

func (s *testSweetStore) TryDecrement(id, amount int) (int, error) {
	sweet, ok := s.sweets[id]
	if !ok {
		return 0, &models.SweetUnavailableError{SweetID: id}
	}
	if sweet.Quantity < amount {
		return 0, &models.InsufficientStockError{SweetID: id, Requested: amount, Available: sweet.Quantity}
	}
	sweet.Quantity -= amount
	return sweet.Quantity, nil
}

func (s *testSweetStore) Increment(id, amount int) (int, error) {
	sweet, ok := s.sweets[id]
	if !ok {
		return 0, models.ErrSweetNotFound
	}
	sweet.Quantity += amount
	return sweet.Quantity, nil
}

func (s *testSweetStore) Create(req *models.SweetCreateRequest) (*models.Sweet, error) {
	for _, existing := range s.sweets {
		if existing.Name == req.Name {
			return nil, models.ErrDuplicateEntry
		}
	}
	sweet := &models.Sweet{
		ID:        s.nextID,
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		Quantity:  req.Quantity,
		ImageURL:  req.ImageURL,
		ImageHint: req.ImageHint,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.nextID++
	s.sweets[sweet.ID] = sweet
	copied := *sweet
	return &copied, nil
}

func (s *testSweetStore) Update(id int, req *models.SweetUpdateRequest) (*models.Sweet, error) {
	sweet, ok := s.sweets[id]
	if !ok {
		return nil, models.ErrSweetNotFound
	}
	sweet.Name = req.Name
	sweet.Category = req.Category
	sweet.Price = req.Price
	sweet.Quantity = req.Quantity
	sweet.UpdatedAt = time.Now()
	copied := *sweet
	return &copied, nil
}

func (s *testSweetStore) UpdateImage(id int, imageURL, imageHint string) error {
	sweet, ok := s.sweets[id]
	if !ok {
		return models.ErrSweetNotFound
	}
	sweet.ImageURL = imageURL
	sweet.ImageHint = imageHint
	return nil
}

func (s *testSweetStore) Delete(id int) error {
	if _, ok := s.sweets[id]; !ok {
		return models.ErrSweetNotFound
	}
	delete(s.sweets, id)
	return nil
}

func (s *testSweetStore) Search(filters repositories.SweetSearchFilters) ([]*models.Sweet, error) {
	var result []*models.Sweet
	for _, sweet := range s.sweets {
		if filters.Category != "" && sweet.Category != filters.Category {
			continue
		}
		copied := *sweet
		result = append(result, &copied)
	}
	return result, nil
}

func (s *testSweetStore) Categories() ([]string, error) {
	seen := make(map[string]bool)
	var categories []string
	for _, sweet := range s.sweets {
		if !seen[sweet.Category] {
			seen[sweet.Category] = true
			categories = append(categories, sweet.Category)
		}
	}
	return categories, nil
}

// testRecorder is an in-memory PurchaseRecorder for handler tests
type testRecorder struct {
	purchases []*models.Purchase
	nextID    int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{nextID: 1}
}

func (r *testRecorder) Record(req *models.PurchaseCreateRequest) (*models.Purchase, error) {
	purchase := &models.Purchase{
		ID:         r.nextID,
		UserID:     req.UserID,
		SweetID:    req.SweetID,
		SweetName:  req.SweetName,
		Quantity:   req.Quantity,
		TotalPrice: req.TotalPrice,
		CreatedAt:  time.Now(),
	}
	r.nextID++
	r.purchases = append(r.purchases, purchase)
	return purchase, nil
}

func (r *testRecorder) Remove(id int) error {
	for i, p := range r.purchases {
		if p.ID == id {
			r.purchases = append(r.purchases[:i], r.purchases[i+1:]...)
			return nil
		}
	}
	return models.ErrPurchaseNotFound
}

func (r *testRecorder) GetByID(id int) (*models.Purchase, error) {
	for _, p := range r.purchases {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, models.ErrPurchaseNotFound
}

func (r *testRecorder) GetByUserID(userID int) ([]*models.Purchase, error) {
	var result []*models.Purchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *testRecorder) GetAll() ([]*models.Purchase, error) {
	return r.purchases, nil
}

func chocolateCake() *models.Sweet {
	return &models.Sweet{ID: 1, Name: "Chocolate Cake", Category: "Cake", Price: 2500, Quantity: 10}
}

func macarons() *models.Sweet {
	return &models.Sweet{ID: 2, Name: "Macarons", Category: "Pastry", Price: 1500, Quantity: 5}
}

// asUser injects an authenticated user into the request context the way the
// session middleware would
func asUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, user))
}

func testAdmin() *models.User {
	return &models.User{ID: 1, Name: "Admin", Email: "admin@sweetspot.test", Role: models.RoleAdmin}
}

func testCustomer() *models.User {
	return &models.User{ID: 2, Name: "Customer", Email: "customer@sweetspot.test", Role: models.RoleUser}
}
