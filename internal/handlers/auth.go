package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"sweetspot/internal/middleware"
	"sweetspot/internal/services"
)

// AuthHandler handles registration, login, and logout requests
type AuthHandler struct {
	auth  *services.AuthService
	store sessions.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, store sessions.Store) *AuthHandler {
	return &AuthHandler{
		auth:  auth,
		store: store,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.auth.Register(&req)
	if err != nil {
		writeError(w, err)
		return
	}

	h.saveSession(w, r, resp.SessionID)
	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := h.auth.Login(&req)
	if err != nil {
		// Login failures are always reported as a 401, not 403, so the
		// client can distinguish "log in again" from "not allowed".
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})
		return
	}

	h.saveSession(w, r, resp.SessionID)
	writeJSON(w, http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err == nil {
		if sessionID, ok := session.Values["session_id"].(string); ok {
			_ = h.auth.Logout(sessionID)
		}
		session.Options.MaxAge = -1
		_ = session.Save(r, w)
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "not authenticated"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) saveSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		// A stale cookie with an old secret still yields a fresh session
		session, _ = h.store.New(r, middleware.SessionName)
	}
	session.Values["session_id"] = sessionID
	_ = session.Save(r, w)
}
