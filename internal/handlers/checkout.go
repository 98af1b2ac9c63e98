package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/sessions"

	"sweetspot/internal/middleware"
	"sweetspot/internal/models"
	"sweetspot/internal/services"
)

// CheckoutHandler handles checkout requests
type CheckoutHandler struct {
	checkout *services.CheckoutService
	store    sessions.Store
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout *services.CheckoutService, store sessions.Store) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		store:    store,
	}
}

type checkoutRequest struct {
	Items []models.CartLine `json:"items"`
}

// Checkout handles POST /api/checkout. The cart lines come from the request
// body; when the body carries no items, the session cart is used instead. On
// success the session cart is cleared.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "authentication required"})
		return
	}

	// An empty body means "check out the session cart"
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, models.ErrInvalidInput)
		return
	}

	lines := req.Items
	session, sessionErr := h.store.Get(r, middleware.SessionName)
	if len(lines) == 0 && sessionErr == nil {
		lines = getCartFromSession(session).Lines()
	}

	result, err := h.checkout.Checkout(user.ID, lines)
	if err != nil {
		writeError(w, err)
		return
	}

	if sessionErr == nil {
		delete(session.Values, cartSessionKey)
		_ = session.Save(r, w)
	}

	writeJSON(w, http.StatusOK, result)
}
