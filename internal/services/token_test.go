package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetspot/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", "sweetspot-test")
	user := &models.User{ID: 42, Role: models.RoleAdmin}

	token, err := svc.Issue(user, time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestTokenVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", "sweetspot-test")
	verifier := NewTokenService("secret-b", "sweetspot-test")

	token, err := issuer.Issue(&models.User{ID: 1, Role: models.RoleUser}, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestTokenVerify_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", "sweetspot-test")

	token, err := svc.Issue(&models.User{ID: 1, Role: models.RoleUser}, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.Error(t, err)
}

func TestTokenVerify_Garbage(t *testing.T) {
	svc := NewTokenService("test-secret", "sweetspot-test")

	_, err := svc.Verify("not-a-token")
	assert.Error(t, err)
}
