package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"sweetspot/internal/middleware"
	"sweetspot/internal/models"
	"sweetspot/internal/services"
)

const cartSessionKey = "cart"

// CartHandler handles the session-held shopping cart. The cart is a
// convenience only: nothing is reserved until checkout.
type CartHandler struct {
	catalog *services.CatalogService
	store   sessions.Store
}

// NewCartHandler creates a new cart handler
func NewCartHandler(catalog *services.CatalogService, store sessions.Store) *CartHandler {
	return &CartHandler{
		catalog: catalog,
		store:   store,
	}
}

type addToCartRequest struct {
	SweetID  int `json:"sweet_id"`
	Quantity int `json:"quantity"`
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		writeJSON(w, http.StatusOK, &models.Cart{Items: []models.CartItem{}})
		return
	}

	writeJSON(w, http.StatusOK, getCartFromSession(session))
}

// Add handles POST /api/cart/items
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Quantity < 1 {
		writeError(w, models.ErrInvalidInput)
		return
	}

	sweet, err := h.catalog.GetSweet(req.SweetID)
	if err != nil {
		writeError(w, err)
		return
	}
	if sweet.Quantity < req.Quantity {
		writeError(w, &models.InsufficientStockError{
			SweetID:   sweet.ID,
			Requested: req.Quantity,
			Available: sweet.Quantity,
		})
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		session, _ = h.store.New(r, middleware.SessionName)
	}

	cart := getCartFromSession(session)
	found := false
	for i := range cart.Items {
		if cart.Items[i].SweetID == sweet.ID {
			cart.Items[i].Quantity += req.Quantity
			cart.Items[i].Price = sweet.Price // refresh snapshot
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			SweetID:   sweet.ID,
			SweetName: sweet.Name,
			Price:     sweet.Price,
			Quantity:  req.Quantity,
		})
	}
	cart.Recalculate()

	session.Values[cartSessionKey] = cart
	if err := session.Save(r, w); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/{sweetID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sweetID, err := strconv.Atoi(chi.URLParam(r, "sweetID"))
	if err != nil {
		writeError(w, models.ErrInvalidInput)
		return
	}

	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		writeJSON(w, http.StatusOK, &models.Cart{Items: []models.CartItem{}})
		return
	}

	cart := getCartFromSession(session)
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.SweetID != sweetID {
			items = append(items, item)
		}
	}
	cart.Items = items
	cart.Recalculate()

	session.Values[cartSessionKey] = cart
	if err := session.Save(r, w); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r, middleware.SessionName)
	if err == nil {
		delete(session.Values, cartSessionKey)
		_ = session.Save(r, w)
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func getCartFromSession(session *sessions.Session) *models.Cart {
	if cart, ok := session.Values[cartSessionKey].(*models.Cart); ok && cart != nil {
		return cart
	}
	return &models.Cart{Items: []models.CartItem{}}
}
