package services

import (
	"errors"
	"sync"
	"time"

	"sweetspot/internal/models"
	"sweetspot/internal/repositories"
)

// fakeSweetStore is an in-memory SweetStore. Its TryDecrement and Increment
// keep the same atomicity contract as the real repository: the availability
// check and the mutation happen under one lock.
type fakeSweetStore struct {
	mu     sync.Mutex
	sweets map[int]*models.Sweet
	nextID int

	// failDecrement forces TryDecrement to report insufficient stock for a
	// sweet id regardless of quantity, to simulate losing a race.
	failDecrement map[int]bool
}

func newFakeSweetStore(sweets ...*models.Sweet) *fakeSweetStore {
	s := &fakeSweetStore{
		sweets:        make(map[int]*models.Sweet),
		failDecrement: make(map[int]bool),
		nextID:        1,
	}
	for _, sweet := range sweets {
		copied := *sweet
		s.sweets[sweet.ID] = &copied
		if sweet.ID >= s.nextID {
			s.nextID = sweet.ID + 1
		}
	}
	return s
}

func (s *fakeSweetStore) GetByID(id int) (*models.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet, ok := s.sweets[id]
	if !ok {
		return nil, models.ErrSweetNotFound
	}
	copied := *sweet
	return &copied, nil
}

func (s *fakeSweetStore) TryDecrement(id, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet, ok := s.sweets[id]
	if !ok {
		return 0, &models.SweetUnavailableError{SweetID: id}
	}
	if s.failDecrement[id] || sweet.Quantity < amount {
		return 0, &models.InsufficientStockError{SweetID: id, Requested: amount, Available: sweet.Quantity}
	}
	sweet.Quantity -= amount
	return sweet.Quantity, nil
}

func (s *fakeSweetStore) Increment(id, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet, ok := s.sweets[id]
	if !ok {
		return 0, models.ErrSweetNotFound
	}
	sweet.Quantity += amount
	return sweet.Quantity, nil
}

func (s *fakeSweetStore) Create(req *models.SweetCreateRequest) (*models.Sweet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
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

func (s *fakeSweetStore) Update(id int, req *models.SweetUpdateRequest) (*models.Sweet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet, ok := s.sweets[id]
	if !ok {
		return nil, models.ErrSweetNotFound
	}
	sweet.Name = req.Name
	sweet.Category = req.Category
	sweet.Price = req.Price
	sweet.Quantity = req.Quantity
	sweet.ImageURL = req.ImageURL
	sweet.ImageHint = req.ImageHint
	sweet.UpdatedAt = time.Now()
	copied := *sweet
	return &copied, nil
}

func (s *fakeSweetStore) UpdateImage(id int, imageURL, imageHint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sweet, ok := s.sweets[id]
	if !ok {
		return models.ErrSweetNotFound
	}
	sweet.ImageURL = imageURL
	sweet.ImageHint = imageHint
	return nil
}

func (s *fakeSweetStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sweets[id]; !ok {
		return models.ErrSweetNotFound
	}
	delete(s.sweets, id)
	return nil
}

func (s *fakeSweetStore) Search(filters repositories.SweetSearchFilters) ([]*models.Sweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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

func (s *fakeSweetStore) Categories() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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

func (s *fakeSweetStore) quantity(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sweet, ok := s.sweets[id]; ok {
		return sweet.Quantity
	}
	return -1
}

// fakeRecorder is an in-memory append-only PurchaseRecorder
type fakeRecorder struct {
	mu        sync.Mutex
	purchases []*models.Purchase
	nextID    int
	calls     int

	// failOn makes the Nth Record call (1-based) fail once
	failOn int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{nextID: 1}
}

func (r *fakeRecorder) Record(req *models.PurchaseCreateRequest) (*models.Purchase, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failOn > 0 && r.calls == r.failOn {
		return nil, errors.New("recorder unavailable")
	}
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

func (r *fakeRecorder) Remove(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.purchases {
		if p.ID == id {
			r.purchases = append(r.purchases[:i], r.purchases[i+1:]...)
			return nil
		}
	}
	return models.ErrPurchaseNotFound
}

func (r *fakeRecorder) GetByID(id int) (*models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.purchases {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, models.ErrPurchaseNotFound
}

func (r *fakeRecorder) GetByUserID(userID int) ([]*models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Purchase
	for _, p := range r.purchases {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeRecorder) GetAll() ([]*models.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Purchase(nil), r.purchases...), nil
}

func (r *fakeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.purchases)
}

// fakeUserStore is an in-memory UserStore
type fakeUserStore struct {
	mu       sync.Mutex
	users    map[int]*models.User
	sessions map[string]fakeSession
	nextID   int
}

type fakeSession struct {
	userID    int
	expiresAt time.Time
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:    make(map[int]*models.User),
		sessions: make(map[string]fakeSession),
		nextID:   1,
	}
}

func (s *fakeUserStore) Create(req *models.UserCreateRequest) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == req.Email {
			return nil, models.ErrDuplicateEntry
		}
	}
	user := &models.User{
		ID:           s.nextID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: req.Password,
		Role:         req.Role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.nextID++
	s.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByID(id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (s *fakeUserStore) CreateSession(userID int, sessionID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = fakeSession{userID: userID, expiresAt: expiresAt}
	return nil
}

func (s *fakeUserStore) GetUserBySession(sessionID string) (*models.User, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok || time.Now().After(session.expiresAt) {
		return nil, models.ErrUserNotFound
	}
	return s.GetByID(session.userID)
}

func (s *fakeUserStore) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *fakeUserStore) DeleteExpiredSessions() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, session := range s.sessions {
		if time.Now().After(session.expiresAt) {
			delete(s.sessions, id)
		}
	}
	return nil
}
