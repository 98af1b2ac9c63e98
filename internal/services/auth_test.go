package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetspot/internal/models"
)

func newTestAuthService() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	tokens := NewTokenService("test-secret", "sweetspot-test")
	return NewAuthService(users, tokens), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Register(&RegisterRequest{
		Name:     "Alex",
		Email:    "alex@example.com",
		Password: "sugar-rush-42",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, resp.User.Role, "registration never grants admin")
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.Token)

	login, err := svc.Login(&LoginRequest{Email: "alex@example.com", Password: "sugar-rush-42"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	user, err := svc.ValidateSession(login.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", user.Email)

	user, err = svc.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", user.Email)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing name", RegisterRequest{Email: "a@b.com", Password: "longenough"}},
		{"bad email", RegisterRequest{Name: "A", Email: "not-an-email", Password: "longenough"}},
		{"short password", RegisterRequest{Name: "A", Email: "a@b.com", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(&tt.req)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	req := &RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "sugar-rush-42"}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)
}

func TestLogin_WrongCredentials(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Register(&RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "sugar-rush-42"})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "alex@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "sugar-rush-42"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Register(&RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "sugar-rush-42"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(resp.SessionID))

	_, err = svc.ValidateSession(resp.SessionID)
	assert.Error(t, err)
}
