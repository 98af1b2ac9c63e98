package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"sweetspot/internal/handlers"
	"sweetspot/internal/middleware"
)

// Handlers bundles everything the router needs
type Handlers struct {
	Auth      *handlers.AuthHandler
	Sweets    *handlers.SweetsHandler
	Cart      *handlers.CartHandler
	Checkout  *handlers.CheckoutHandler
	Purchases *handlers.PurchasesHandler
	Admin     *handlers.AdminHandler

	// UploadsDir, when set, serves locally stored images under /uploads
	UploadsDir string
}

// NewRouter assembles the application router
func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RecoverMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(authMiddleware.LoadUser)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/me", h.Auth.Me)
		})

		r.Route("/sweets", func(r chi.Router) {
			r.Get("/", h.Sweets.List)
			r.Get("/categories", h.Sweets.Categories)
			r.Get("/{id}", h.Sweets.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.Get)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.Add)
			r.Delete("/items/{sweetID}", h.Cart.RemoveItem)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/checkout", h.Checkout.Checkout)
			r.Get("/purchases", h.Purchases.List)
			r.Get("/purchases/{id}", h.Purchases.Get)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/purchases", h.Purchases.ListAll)
			r.Post("/sweets", h.Admin.CreateSweet)
			r.Put("/sweets/{id}", h.Admin.UpdateSweet)
			r.Delete("/sweets/{id}", h.Admin.DeleteSweet)
			r.Post("/sweets/{id}/restock", h.Admin.Restock)
			r.Post("/sweets/{id}/image", h.Admin.UploadImage)
		})
	})

	if h.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	return r
}
