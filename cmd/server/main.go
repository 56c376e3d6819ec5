package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "instrument-rental-backend/internal/api/http"
	"instrument-rental-backend/internal/assistant"
	"instrument-rental-backend/internal/config"
	"instrument-rental-backend/internal/jobs"
	"instrument-rental-backend/internal/logger"
	"instrument-rental-backend/internal/metrics"
	"instrument-rental-backend/internal/processor"
	"instrument-rental-backend/internal/repository/postgres"
	"instrument-rental-backend/internal/scheduler"
	"instrument-rental-backend/internal/security"
	"instrument-rental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load .env before the config layer reads environment overrides
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Instrument Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	metrics.Register()

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Initialize Payment Processor
	stripeProc := processor.NewStripeProcessor(cfg.Stripe.SecretKey, time.Duration(cfg.Stripe.TimeoutSeconds)*time.Second)

	// Initialize Assistant clients; both are optional and the request paths
	// degrade gracefully when they are unreachable.
	var model assistant.Model
	if m, err := assistant.NewOllamaModel(cfg.Assistant.OllamaURL, cfg.Assistant.OllamaModel, time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second); err != nil {
		logger.Warn("Ollama model unavailable, chatbot disabled", "error", err)
	} else {
		model = m
	}
	classifier := assistant.NewHFClassifier(cfg.Assistant.HuggingFaceURL, cfg.Assistant.HuggingFaceAPIKey, time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second)

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	repos := &store.Repositories
	authSvc := service.NewAuthService(store.Users, tokenManager)
	userSvc := service.NewUserService(store.Users)
	instrumentSvc := service.NewInstrumentService(store.Instruments, store.Ownerships)
	ownershipSvc := service.NewOwnershipService(store.Ownerships, store.Instruments, store.Rentals, store.Users)
	rentalSvc := service.NewRentalService(store, repos, emailSvc)
	paymentSvc := service.NewPaymentService(store, repos, stripeProc, emailSvc, cfg.Platform.FeeRate, cfg.Platform.Currency)
	reviewSvc := service.NewReviewService(store, repos)
	surveySvc := service.NewSurveyService(store.Surveys, store.Users)
	recSvc := service.NewRecommendationService(store.Ownerships, store.Rentals, store.Surveys, classifier)
	chatbotSvc := service.NewChatbotService(store.Chats, store.Surveys, store.Ownerships, model)
	dashboardSvc := service.NewDashboardService(store.Users, store.Rentals, store.Ownerships)

	// Initialize HTTP API
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:           httpapi.NewAuthHandler(authSvc),
		Users:          httpapi.NewUserHandler(userSvc),
		Instruments:    httpapi.NewInstrumentHandler(instrumentSvc),
		Ownerships:     httpapi.NewOwnershipHandler(ownershipSvc),
		Rentals:        httpapi.NewRentalHandler(rentalSvc),
		Payments:       httpapi.NewPaymentHandler(paymentSvc),
		Reviews:        httpapi.NewReviewHandler(reviewSvc),
		Surveys:        httpapi.NewSurveyHandler(surveySvc),
		Recommendation: httpapi.NewRecommendationHandler(recSvc),
		Chatbot:        httpapi.NewChatbotHandler(chatbotSvc),
		Dashboard:      httpapi.NewDashboardHandler(dashboardSvc),
	}, tokenManager)

	// Start scheduler for return reminders
	jobRunner := jobs.NewJobRunner(db, emailSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
