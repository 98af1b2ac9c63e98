package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sweetspot/internal/middleware"
	"sweetspot/internal/models"
	"sweetspot/internal/services"
)

// PurchasesHandler handles purchase history requests
type PurchasesHandler struct {
	history *services.HistoryService
}

// NewPurchasesHandler creates a new purchases handler
func NewPurchasesHandler(history *services.HistoryService) *PurchasesHandler {
	return &PurchasesHandler{history: history}
}

// List handles GET /api/purchases (the caller's own history)
func (h *PurchasesHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	purchases, err := h.history.UserPurchases(user)
	if err != nil {
		writeError(w, err)
		return
	}
	if purchases == nil {
		purchases = []*models.Purchase{}
	}

	writeJSON(w, http.StatusOK, purchases)
}

// Get handles GET /api/purchases/{id}
func (h *PurchasesHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrInvalidInput)
		return
	}

	purchase, err := h.history.GetPurchase(user, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, purchase)
}

// ListAll handles GET /api/admin/purchases
func (h *PurchasesHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	purchases, err := h.history.AllPurchases(user)
	if err != nil {
		writeError(w, err)
		return
	}
	if purchases == nil {
		purchases = []*models.Purchase{}
	}

	writeJSON(w, http.StatusOK, purchases)
}
