package main

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"wayfarer/internal/auth"
	"wayfarer/internal/config"
	"wayfarer/internal/db"
	"wayfarer/internal/model"
	"wayfarer/internal/repository"
)

// Seeds the administrative account. Roles are never mutated by any API
// endpoint; this binary is the administrative action that assigns them.
func main() {
	log.Println("Starting seed script...")

	name := getEnv("ADMIN_NAME", "Administrator")
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	hasher := auth.NewPBKDF2Hasher()
	ctx := context.Background()

	key, salt, err := hasher.Set(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	existing, err := userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check admin account: %v", err)
	}

	if existing != nil {
		// Update existing account
		existing.Name = name
		existing.Role = model.RoleAdmin
		existing.PasswordKey = key
		existing.PasswordSalt = salt
		if err := userRepo.Update(ctx, existing); err != nil {
			log.Fatalf("Failed to update admin account: %v", err)
		}
		log.Printf("Admin account updated: %s", email)
		return
	}

	// Create new account
	admin := &model.User{
		Name:         name,
		Email:        email,
		Role:         model.RoleAdmin,
		PasswordKey:  key,
		PasswordSalt: salt,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}
	log.Printf("Admin account created: %s", email)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
