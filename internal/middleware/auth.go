package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"sweetspot/internal/models"
	"sweetspot/internal/services"
)

type contextKey string

const (
	// UserContextKey is the request context key holding the current user
	UserContextKey contextKey = "user"

	// SessionName is the cookie session name
	SessionName = "sweetspot_session"
)

// AuthMiddleware loads the current user from a bearer token or session cookie
type AuthMiddleware struct {
	auth  *services.AuthService
	store sessions.Store
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(auth *services.AuthService, store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{
		auth:  auth,
		store: store,
	}
}

// LoadUser resolves the current user, if any, and adds it to the request
// context. Bearer tokens take precedence over the session cookie. Requests
// without valid credentials continue anonymously.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := m.resolveUser(r); user != nil {
			r = r.WithContext(context.WithValue(r.Context(), UserContextKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) resolveUser(r *http.Request) *models.User {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimPrefix(header, "Bearer ")
		if user, err := m.auth.ValidateToken(token); err == nil {
			return user
		}
		return nil
	}

	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return nil
	}
	sessionID, ok := session.Values["session_id"].(string)
	if !ok || sessionID == "" {
		return nil
	}

	user, err := m.auth.ValidateSession(sessionID)
	if err != nil {
		return nil
	}
	return user
}

// RequireAuth rejects requests without an authenticated user
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from non-admin users
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin() {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the current user from the request context, or nil
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}
