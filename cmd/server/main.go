package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"experano/config"
	"experano/internal/adapters/auth"
	"experano/internal/adapters/cloudinary"
	"experano/internal/adapters/email"
	"experano/internal/adapters/llm"
	deliveryhttp "experano/internal/delivery/http"
	"experano/internal/delivery/http/controllers"
	"experano/internal/delivery/http/middleware"
	"experano/internal/repository/postgres"
	"experano/internal/services"

	_ "github.com/lib/pq"
)

// @title Experano API
// @version 1.0
// @description Personalized event discovery backend: onboarding conversation, preference-based event matching, and catalog management.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}
	if err := postgres.EnsureSchema(context.Background(), db); err != nil {
		logger.Error("failed to provision schema", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	inference, err := llm.NewClient(cfg.Inference.BaseURL, cfg.Inference.APIKey, cfg.Inference.Model)
	if err != nil {
		logger.Error("failed to create inference client", "err", err)
		os.Exit(1)
	}

	uploader := cloudinary.NewClient(cloudinary.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	}, nil)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mailer.Provider,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mailer.SES.Region,
			AccessKeyID:     cfg.Mailer.SES.AccessKeyID,
			SecretAccessKey: cfg.Mailer.SES.SecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	userService := services.NewUserService(userRepo, cfg.RequestTimeout)
	eventService := services.NewEventService(eventRepo, cfg.RequestTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())
	onboardingService := services.NewOnboardingService(userRepo, inference, emailService, logger)
	recommendationService := services.NewRecommendationService(userRepo, eventRepo, inference, logger, services.RecommendationConfig{
		MatchThreshold:     cfg.Matching.Threshold,
		CandidateLimit:     cfg.Matching.CandidateLimit,
		RandomFallbackSize: cfg.Matching.RandomFallbackSize,
		RetryAttempts:      cfg.Matching.RetryAttempts,
		RetryDelay:         cfg.Matching.RetryDelay,
	})

	userController := controllers.NewUserController(logger, userService, recommendationService)
	eventController := controllers.NewEventController(logger, eventService)
	onboardingController := controllers.NewOnboardingController(logger, onboardingService)
	uploadController := controllers.NewUploadController(logger, uploader)

	mux := deliveryhttp.NewRouter(userController, eventController, onboardingController, uploadController, verifier)

	var handler http.Handler = mux
	handler = middleware.Logging(logger, handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "err", err)
	}
	logger.Info("server stopped")
}
