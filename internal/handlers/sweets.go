package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"sweetspot/internal/models"
	"sweetspot/internal/repositories"
	"sweetspot/internal/services"
)

// SweetsHandler handles public catalog browsing requests
type SweetsHandler struct {
	catalog *services.CatalogService
}

// NewSweetsHandler creates a new sweets handler
func NewSweetsHandler(catalog *services.CatalogService) *SweetsHandler {
	return &SweetsHandler{catalog: catalog}
}

// List handles GET /api/sweets with search, filter, and sort query params
func (h *SweetsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repositories.SweetSearchFilters{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}

	// sort=price_desc, sort=name, etc.
	if sortParam := r.URL.Query().Get("sort"); sortParam != "" {
		filters.SortBy = strings.TrimSuffix(sortParam, "_desc")
		filters.SortDesc = strings.HasSuffix(sortParam, "_desc")
	}

	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filters.Offset = offset
	}

	sweets, err := h.catalog.ListSweets(filters)
	if err != nil {
		writeError(w, err)
		return
	}
	if sweets == nil {
		sweets = []*models.Sweet{}
	}

	writeJSON(w, http.StatusOK, sweets)
}

// Get handles GET /api/sweets/{id}
func (h *SweetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, models.ErrInvalidInput)
		return
	}

	sweet, err := h.catalog.GetSweet(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sweet)
}

// Categories handles GET /api/sweets/categories
func (h *SweetsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories()
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}

	writeJSON(w, http.StatusOK, categories)
}
