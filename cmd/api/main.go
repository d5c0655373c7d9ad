package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruit-portal-api/config"
	_ "recruit-portal-api/docs" // Important for Swagger
	v1 "recruit-portal-api/internal/delivery/http/v1"
	"recruit-portal-api/internal/repository/postgres"
	"recruit-portal-api/internal/usecase"
	"recruit-portal-api/pkg/auth"
	"recruit-portal-api/pkg/database"
	"recruit-portal-api/pkg/hash"
	"recruit-portal-api/pkg/logger"
	"recruit-portal-api/pkg/redis"
)

// @title           Recruitment Portal API
// @version         1.0
// @description     Job-application portal backend: applicants register and submit applications, recruiters triage them.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting recruitment portal backend", "port", cfg.Port)

	// 3. Migrate and connect to the database
	if err := database.RunMigrations(cfg.DBUrl); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Redis backs the rate limiter; the limiter falls back to an
	// in-memory window when Redis is not configured.
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	personRepo := postgres.NewPersonRepository(dbPool)
	competenceRepo := postgres.NewCompetenceRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 6. Setup UseCases
	hasher := hash.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	authUC := usecase.NewAuthUsecase(personRepo, hasher, tokens)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, personRepo, competenceRepo)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ApplicationUC: applicationUC,
		Tokens:        tokens,
		DB:            dbPool,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
