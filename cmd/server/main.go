package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flashquest-backend/internal/config"
	"flashquest-backend/internal/database"
	"flashquest-backend/internal/handlers"
	"flashquest-backend/internal/middleware"
	"flashquest-backend/internal/repository"
	"flashquest-backend/internal/router"
	"flashquest-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting FlashQuest Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.Migrate(pool); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 5: Initialize AI Assistant ────
	assistant, err := services.NewAssistant(cfg.AIProvider, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("✗ AI assistant initialization failed: %v", err)
	}
	log.Printf("✓ AI assistant initialized (%s)", cfg.AIProvider)

	// ──── Initialize Repositories & Services ────
	playerRepo := repository.NewPlayerRepo(pool)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := services.NewSessionStore(redisClient, sessionTTL)
	sessionAuth := middleware.NewSessionAuth(cfg.JWTSecret, sessions, sessionTTL)

	authService := services.NewAuthService(playerRepo)
	extractService := services.NewFileExtractService()
	flashcardService := services.NewFlashcardService(assistant, extractService)
	grader := services.NewGrader(assistant)

	// ──── Initialize Handlers ────
	renderer, err := handlers.NewRenderer(cfg.WebDir)
	if err != nil {
		log.Fatalf("✗ Template loading failed: %v", err)
	}
	log.Println("✓ Templates loaded")

	authHandler := handlers.NewAuthHandler(authService, sessions, sessionAuth, renderer)
	flashcardHandler := handlers.NewFlashcardHandler(playerRepo, flashcardService, sessions, renderer, cfg.MaxUploadMB)
	answerHandler := handlers.NewAnswerHandler(grader, assistant, sessions, playerRepo)
	pageHandler := handlers.NewPageHandler(playerRepo, renderer)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(sessionAuth, authHandler, flashcardHandler, answerHandler, pageHandler, cfg.WebDir)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ FlashQuest Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
