package main

import (
	"log"
	"net/http"

	_ "wayfarer/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"wayfarer/internal/auth"
	"wayfarer/internal/config"
	"wayfarer/internal/db"
	"wayfarer/internal/handler"
	"wayfarer/internal/mail"
	"wayfarer/internal/model"
	"wayfarer/internal/repository"
	"wayfarer/internal/router"
	"wayfarer/internal/service"
)

// @title Wayfarer Auth API
// @version 1.0
// @description Credential and session lifecycle service: registration, login, password reset and role-gated session verification.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	mailer, err := mail.New(cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailAddress, false)
	if err != nil {
		log.Fatalf("mail init: %v", err)
	}
	if !mailer.IsEnabled() {
		log.Println("mail transport disabled; reset emails will not be delivered")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewPBKDF2Hasher()
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, hasher, jwtService, mailer, cfg.AppURL)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, !cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(e, cfg, authHandler, userHandler)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
