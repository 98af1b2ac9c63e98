package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"sweetspot/internal/middleware"
	"sweetspot/internal/models"
	"sweetspot/internal/services"
)

const maxImageUploadSize = 10 << 20 // 10 MB

// AdminHandler handles admin dashboard requests: sweet CRUD, restock, and
// image uploads. Routes are admin-gated by middleware, and the services check
// the caller's role again at their own boundary.
type AdminHandler struct {
	inventory *services.InventoryService
	images    *services.ImageService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(inventory *services.InventoryService, images *services.ImageService) *AdminHandler {
	return &AdminHandler{
		inventory: inventory,
		images:    images,
	}
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

// CreateSweet handles POST /api/admin/sweets
func (h *AdminHandler) CreateSweet(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.SweetCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sweet, err := h.inventory.CreateSweet(user, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sweet)
}

// UpdateSweet handles PUT /api/admin/sweets/{id}
func (h *AdminHandler) UpdateSweet(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrInvalidInput)
		return
	}

	var req models.SweetUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sweet, err := h.inventory.UpdateSweet(user, id, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sweet)
}

// DeleteSweet handles DELETE /api/admin/sweets/{id}
func (h *AdminHandler) DeleteSweet(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrInvalidInput)
		return
	}

	if err := h.inventory.DeleteSweet(user, id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// Restock handles POST /api/admin/sweets/{id}/restock
func (h *AdminHandler) Restock(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrInvalidInput)
		return
	}

	var req restockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.inventory.Restock(user, id, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// UploadImage handles POST /api/admin/sweets/{id}/image (multipart form with
// an "image" field)
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrInvalidInput)
		return
	}

	if err := r.ParseMultipartForm(maxImageUploadSize); err != nil {
		writeError(w, models.ErrInvalidInput)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, models.ErrInvalidInput)
		return
	}
	defer file.Close()

	url, err := h.images.ProcessAndStore(r.Context(), file)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.inventory.SetSweetImage(user, id, url); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}
