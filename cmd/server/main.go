package main

import (
	"log"
	"net/http"
	"os"

	_ "feedbackhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/cache"
	"feedbackhub/internal/config"
	"feedbackhub/internal/db"
	"feedbackhub/internal/handler"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
	"feedbackhub/internal/router"
	"feedbackhub/internal/service"
)

// @title Feedback Tracker API
// @version 1.0
// @description Performance-review feedback API: managers write feedback for their team, employees acknowledge it, both see dashboards.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Feedback{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Feedback{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	feedbackRepo := repository.NewFeedbackRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	feedbackService := service.NewFeedbackService(userRepo, feedbackRepo)
	dashboardService := service.NewDashboardService(userRepo, feedbackRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		feedbackHandler,
		dashboardHandler,
	)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
