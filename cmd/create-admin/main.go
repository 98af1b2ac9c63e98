package main

import (
	"flag"
	"log"

	"sweetspot/internal/config"
	"sweetspot/internal/database"
	"sweetspot/internal/models"
	"sweetspot/internal/repositories"
	"sweetspot/internal/utils"
)

func main() {
	name := flag.String("name", "Admin", "admin display name")
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

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

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	userRepo := repositories.NewUserRepository(db.DB)
	user, err := userRepo.Create(&models.UserCreateRequest{
		Name:     *name,
		Email:    *email,
		Password: hash,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Printf("Created admin user %d (%s)", user.ID, user.Email)
}
