package main

import (
	"errors"
	"log"

	"sweetspot/internal/config"
	"sweetspot/internal/database"
	"sweetspot/internal/models"
	"sweetspot/internal/repositories"
)

// Starter catalog for a fresh install
var starterSweets = []models.SweetCreateRequest{
	{Name: "Chocolate Cake", Category: "Cake", Price: 2500, Quantity: 10, ImageURL: "https://picsum.photos/seed/1/400/300", ImageHint: "chocolate cake"},
	{Name: "Strawberry Cheesecake", Category: "Cheesecake", Price: 3000, Quantity: 5, ImageURL: "https://picsum.photos/seed/2/400/300", ImageHint: "strawberry cheesecake"},
	{Name: "Macarons", Category: "Pastry", Price: 1500, Quantity: 20, ImageURL: "https://picsum.photos/seed/3/400/300", ImageHint: "colorful macarons"},
	{Name: "Vanilla Cupcakes", Category: "Cupcake", Price: 1200, Quantity: 15, ImageURL: "https://picsum.photos/seed/4/400/300", ImageHint: "vanilla cupcakes"},
}

func main() {
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

	sweetRepo := repositories.NewSweetRepository(db.DB)
	created := 0
	for i := range starterSweets {
		if _, err := sweetRepo.Create(&starterSweets[i]); err != nil {
			if errors.Is(err, models.ErrDuplicateEntry) {
				continue
			}
			log.Fatalf("Failed to seed %q: %v", starterSweets[i].Name, err)
		}
		created++
	}

	log.Printf("Seeded %d sweets (%d already present)", created, len(starterSweets)-created)
}
