package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/interno-studio/interno-backend/config"
	"github.com/interno-studio/interno-backend/internal/app/controller"
	"github.com/interno-studio/interno-backend/internal/app/repository"
	"github.com/interno-studio/interno-backend/internal/app/service"
	"github.com/interno-studio/interno-backend/internal/db"
	"github.com/interno-studio/interno-backend/internal/middleware"
	"github.com/interno-studio/interno-backend/internal/router"
	"github.com/interno-studio/interno-backend/internal/scheduler"
	"github.com/interno-studio/interno-backend/internal/storage"
	ws "github.com/interno-studio/interno-backend/internal/websocket"
	"github.com/interno-studio/interno-backend/pkg/gemini"
	"github.com/interno-studio/interno-backend/pkg/logger"
	"github.com/interno-studio/interno-backend/pkg/payment/simulator"
	"github.com/interno-studio/interno-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting INTERNO Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: without it logout skips token revocation
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient, err = redis.New(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without token revocation", map[string]interface{}{
				"error": err.Error(),
			})
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// WebSocket hub for the per-session event feed
	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	prefRepo := repository.NewPreferenceRepository(db.GetDB())
	quizRepo := repository.NewQuizRepository(db.GetDB())
	checkoutRepo := repository.NewCheckoutRepository()

	// Services
	notificationService := service.NewNotificationService(service.DefaultNotificationTTL, hub)
	defer notificationService.Shutdown()

	authService := service.NewAuthService(userRepo, notificationService, redisClient, cfg.JWT)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, notificationService)
	orderService := service.NewOrderService(orderRepo)
	preferenceService := service.NewPreferenceService(prefRepo, notificationService)
	quizService := service.NewQuizService(quizRepo)

	gateway := simulator.New(simulator.Config{
		StageDelays: cfg.Checkout.StageDelays,
		SettleAfter: cfg.Checkout.SettleAfter,
	})
	checkoutService := service.NewCheckoutService(
		checkoutRepo, cartService, orderService, notificationService, gateway, hub,
	)

	aiClient := gemini.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Model)
	chatService := service.NewChatService(aiClient)

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService, cartService)
	cartController := controller.NewCartController(cartService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	notificationController := controller.NewNotificationController(notificationService, hub, cfg.CORS.AllowedOrigins)
	preferenceController := controller.NewPreferenceController(preferenceService)
	orderController := controller.NewOrderController(orderService)
	chatController := controller.NewChatController(chatService)
	quizController := controller.NewQuizController(quizService)
	uploadController := controller.NewUploadController(s3Storage)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, redisClient)

	// Stale checkout sweeper
	sweeper := scheduler.NewCheckoutSweeper(checkoutRepo, cfg.Checkout.SessionMaxIdle)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start checkout sweeper", err)
	}
	defer sweeper.Stop()

	r := router.NewRouter(
		authController,
		productController,
		cartController,
		checkoutController,
		notificationController,
		preferenceController,
		orderController,
		chatController,
		quizController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown after timeout", err)
	}
	logger.Info("Server stopped successfully")
}
