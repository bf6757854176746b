package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthyfamilies/internal/auth"
	"healthyfamilies/internal/config"
	"healthyfamilies/internal/database"
	"healthyfamilies/internal/handlers"
	"healthyfamilies/internal/repository"
	"healthyfamilies/internal/security"
	"healthyfamilies/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.AuthTokenSecret == "" {
		log.Fatal("AUTH_TOKEN_SECRET must be set")
	}

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithType(cfg.DatabaseType, cfg.DatabaseURL, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	mailRepo := repository.NewMailRepository(db)

	// Initialize services
	tokenService := auth.NewTokenService(cfg.AuthTokenSecret, cfg.AppBaseURL)
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	authService := service.NewAuthService(tokenService, userRepo, cfg.AuthTokenTTL)
	familyService := service.NewFamilyService(
		db,
		familyRepo,
		userRepo,
		invitationRepo,
		relationshipRepo,
		mailRepo,
		tokenService,
		cfg.AppBaseURL,
		cfg.InvitationTTL,
	)

	// Start the mail dispatcher
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	defer stopDispatcher()
	dispatcher := service.NewMailDispatcher(mailRepo, emailService, cfg.MailPollInterval)
	go dispatcher.Run(dispatcherCtx)

	// Initialize handlers
	rateLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(tokenService, rateLimiter)
	familyHandler := handlers.NewFamilyHandler(familyService)
	authHandler := handlers.NewAuthHandler(authService)

	// Setup routes
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handlers.Health)
	mux.HandleFunc("POST /auth/signin", middleware.RateLimit(authHandler.SignIn))
	mux.HandleFunc("POST /family/invite", middleware.RateLimit(middleware.RequireAuth(familyHandler.InviteMember)))
	mux.HandleFunc("POST /family/join", middleware.RateLimit(middleware.RequireAuth(familyHandler.JoinFamily)))

	// Create server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	stopDispatcher()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
