package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"sweetspot/internal/models"
)

// errorResponse is the JSON body returned for failed requests
type errorResponse struct {
	Error     string `json:"error"`
	SweetID   int    `json:"sweet_id,omitempty"`
	Available *int   `json:"available,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Unrecognized errors are
// logged and surfaced as a bare 500 so internal detail never leaks.
func writeError(w http.ResponseWriter, err error) {
	var stockErr *models.InsufficientStockError
	if errors.As(err, &stockErr) {
		available := stockErr.Available
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:     stockErr.Error(),
			SweetID:   stockErr.SweetID,
			Available: &available,
		})
		return
	}

	var unavailableErr *models.SweetUnavailableError
	if errors.As(err, &unavailableErr) {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   unavailableErr.Error(),
			SweetID: unavailableErr.SweetID,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrEmptyCart), errors.Is(err, models.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "unauthorized"})
	case errors.Is(err, models.ErrSweetNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrPurchaseNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrDuplicateEntry):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return models.ErrInvalidInput
	}
	return nil
}
