package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"sweetspot/internal/models"
	"sweetspot/internal/utils"
)

const sessionDuration = 24 * time.Hour * 7

// AuthService handles registration, login, and session validation
type AuthService struct {
	users  UserStore
	tokens *TokenService
}

// NewAuthService creates a new authentication service
func NewAuthService(users UserStore, tokens *TokenService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User      *models.User `json:"user"`
	SessionID string       `json:"-"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Register creates a new user account. Accounts always start with the user
// role; admins are bootstrapped separately.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	createReq := &models.UserCreateRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.RoleUser,
	}
	if err := createReq.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err)
	}

	if _, err := s.users.GetByEmail(req.Email); err == nil {
		return nil, fmt.Errorf("email %s: %w", req.Email, models.ErrDuplicateEntry)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	createReq.Password = hashedPassword
	user, err := s.users.Create(createReq)
	if err != nil {
		return nil, err
	}

	return s.startSession(user)
}

// Login authenticates a user and creates a session
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, models.ErrUnauthorized
	}

	return s.startSession(user)
}

// ValidateSession returns the user owning a non-expired session
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, models.ErrUnauthorized
	}
	return s.users.GetUserBySession(sessionID)
}

// ValidateToken returns the user identified by a bearer token
func (s *AuthService) ValidateToken(token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, models.ErrUnauthorized
	}
	return s.users.GetByID(claims.UserID)
}

// Logout removes a session
func (s *AuthService) Logout(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.users.DeleteSession(sessionID)
}

// CleanupExpiredSessions removes expired sessions, called periodically
func (s *AuthService) CleanupExpiredSessions() error {
	return s.users.DeleteExpiredSessions()
}

func (s *AuthService) startSession(user *models.User) (*AuthResponse, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	expiresAt := time.Now().Add(sessionDuration)
	if err := s.users.CreateSession(user.ID, sessionID, expiresAt); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthResponse{
		User:      user,
		SessionID: sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func generateSessionID() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
