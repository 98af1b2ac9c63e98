package main

import (
	"encoding/gob"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"sweetspot/internal/config"
	"sweetspot/internal/database"
	"sweetspot/internal/handlers"
	"sweetspot/internal/middleware"
	"sweetspot/internal/models"
	"sweetspot/internal/repositories"
	"sweetspot/internal/server"
	"sweetspot/internal/services"
)

func main() {
	// Register types for session serialization
	gob.Register(&models.Cart{})
	gob.Register(models.CartItem{})
	gob.Register([]models.CartItem{})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.NewConnection(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Println("Database ready")

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days, matches server-side session lifetime
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}

	// Repositories
	sweetRepo := repositories.NewSweetRepository(db.DB)
	purchaseRepo := repositories.NewPurchaseRepository(db.DB)
	userRepo := repositories.NewUserRepository(db.DB)

	// Services
	tokenService := services.NewTokenService(cfg.Token.Secret, cfg.Token.Issuer)
	authService := services.NewAuthService(userRepo, tokenService)
	catalogService := services.NewCatalogService(sweetRepo)
	checkoutService := services.NewCheckoutService(sweetRepo, purchaseRepo)
	inventoryService := services.NewInventoryService(sweetRepo)
	historyService := services.NewHistoryService(purchaseRepo)

	var storageService services.StorageService
	uploadsDir := ""
	if cfg.R2.AccessKeyID != "" && cfg.R2.SecretAccessKey != "" {
		r2Service, err := services.NewR2Service(cfg.R2)
		if err != nil {
			log.Printf("Failed to initialize R2 service: %v, using local storage", err)
			uploadsDir = "./uploads"
			storageService = services.NewFallbackStorageService(uploadsDir, localUploadsURL(cfg))
		} else {
			storageService = r2Service
			log.Println("R2 storage service initialized")
		}
	} else {
		uploadsDir = "./uploads"
		storageService = services.NewFallbackStorageService(uploadsDir, localUploadsURL(cfg))
		log.Println("Using local storage (R2 credentials not configured)")
	}
	imageService := services.NewImageService(storageService)

	// Expired sessions pile up otherwise; sweep hourly.
	go func() {
		for range time.Tick(time.Hour) {
			if err := authService.CleanupExpiredSessions(); err != nil {
				log.Printf("Failed to clean up sessions: %v", err)
			}
		}
	}()

	authMiddleware := middleware.NewAuthMiddleware(authService, sessionStore)

	router := server.NewRouter(server.Handlers{
		Auth:      handlers.NewAuthHandler(authService, sessionStore),
		Sweets:    handlers.NewSweetsHandler(catalogService),
		Cart:      handlers.NewCartHandler(catalogService, sessionStore),
		Checkout:  handlers.NewCheckoutHandler(checkoutService, sessionStore),
		Purchases: handlers.NewPurchasesHandler(historyService),
		Admin:     handlers.NewAdminHandler(inventoryService, imageService),

		UploadsDir: uploadsDir,
	}, authMiddleware)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("SweetSpot listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}

func localUploadsURL(cfg *config.Config) string {
	return fmt.Sprintf("http://%s:%s/uploads", cfg.Server.Host, cfg.Server.Port)
}
