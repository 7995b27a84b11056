package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sparkdate/spark-server/internal/config"
	"github.com/sparkdate/spark-server/internal/database"
	"github.com/sparkdate/spark-server/internal/realtime"
	"github.com/sparkdate/spark-server/internal/repositories"
	"github.com/sparkdate/spark-server/internal/routes"
	"github.com/sparkdate/spark-server/internal/services"
	"github.com/sparkdate/spark-server/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Spark server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed demo profiles in development
	if cfg.SeedDemoProfiles {
		if err := database.SeedDemoProfiles(db); err != nil {
			logger.Warn("Failed to seed demo profiles", "error", err)
		}
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	swipeRepo := repositories.NewSwipeRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	blockRepo := repositories.NewBlockRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)

	// Realtime hub carries match and message events to connected clients
	hub := realtime.NewHub(matchRepo)
	go hub.Run()

	// Services
	profileSvc := services.NewProfileService(userRepo)
	svc := &routes.Services{
		Auth:     services.NewAuthService(userRepo, tokenRepo, cfg),
		Profiles: profileSvc,
		Blocks:   services.NewBlockService(blockRepo, userRepo),
		Feed:     services.NewFeedService(userRepo, swipeRepo, blockRepo),
		Swipes:   services.NewSwipeService(swipeRepo, matchRepo, hub),
		Matches:  services.NewMatchService(matchRepo, profileSvc),
		Hub:      hub,
	}
	svc.Messages = services.NewMessageService(messageRepo, svc.Matches, hub)

	// Sweep expired refresh tokens once a day
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := svc.Auth.PurgeExpiredTokens(); err != nil {
				logger.Warn("Failed to purge expired tokens", "error", err)
			}
		}
	}()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	routes.SetupRoutes(router, svc, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Server listening", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}

	logger.Info("Server stopped")
}
