package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetspot/internal/models"
	"sweetspot/internal/services"
)

func newAdminRouter(store *testSweetStore, user *models.User) chi.Router {
	handler := NewAdminHandler(services.NewInventoryService(store), nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, asUser(req, user))
		})
	})
	r.Post("/api/admin/sweets", handler.CreateSweet)
	r.Put("/api/admin/sweets/{id}", handler.UpdateSweet)
	r.Delete("/api/admin/sweets/{id}", handler.DeleteSweet)
	r.Post("/api/admin/sweets/{id}/restock", handler.Restock)
	return r
}

func TestRestockHandler(t *testing.T) {
	store := newTestSweetStore(macarons()) // quantity 5
	router := newAdminRouter(store, testAdmin())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sweets/2/restock", strings.NewReader(`{"quantity":10}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		SweetID     int `json:"sweet_id"`
		NewQuantity int `json:"new_quantity"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, 2, result.SweetID)
	assert.Equal(t, 15, result.NewQuantity)
}

func TestRestockHandler_InvalidAmount(t *testing.T) {
	router := newAdminRouter(newTestSweetStore(macarons()), testAdmin())

	for _, body := range []string{`{"quantity":0}`, `{"quantity":-5}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/sweets/2/restock", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestRestockHandler_NonAdmin(t *testing.T) {
	router := newAdminRouter(newTestSweetStore(macarons()), testCustomer())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sweets/2/restock", strings.NewReader(`{"quantity":10}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRestockHandler_SweetNotFound(t *testing.T) {
	router := newAdminRouter(newTestSweetStore(), testAdmin())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/sweets/42/restock", strings.NewReader(`{"quantity":10}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateSweetHandler(t *testing.T) {
	store := newTestSweetStore()
	router := newAdminRouter(store, testAdmin())

	body := `{"name":"Lemon Tart","category":"Tart","price":1800,"quantity":12}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/sweets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var sweet models.Sweet
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sweet))
	assert.Equal(t, "Lemon Tart", sweet.Name)
	assert.Equal(t, "lemon tart", sweet.ImageHint)
}

func TestCreateSweetHandler_DuplicateName(t *testing.T) {
	router := newAdminRouter(newTestSweetStore(chocolateCake()), testAdmin())

	body := `{"name":"Chocolate Cake","category":"Cake","price":2500,"quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/sweets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteSweetHandler(t *testing.T) {
	store := newTestSweetStore(chocolateCake())
	router := newAdminRouter(store, testAdmin())

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/sweets/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err := store.GetByID(1)
	assert.ErrorIs(t, err, models.ErrSweetNotFound)
}
