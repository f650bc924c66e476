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

	"assistant-backend/internal/config"
	"assistant-backend/internal/database"
	"assistant-backend/internal/handlers"
	"assistant-backend/internal/repository"
	"assistant-backend/internal/router"
	"assistant-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Assistant Backend...")

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

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Step 4: Initialize Session Store ────
	var sessionStore services.SessionStore
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		sessionStore = services.NewRedisSessionStore(redisClient, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
		log.Println("✓ Redis session store connected")
	} else {
		sessionStore = services.NewMemorySessionStore()
		log.Println("✓ In-memory session store (REDIS_URL not set)")
	}

	// ──── Step 5: Initialize Gemini Client ────
	geminiService, err := services.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiConcurrentReqs)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiService.Close()
	log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)

	// ──── Initialize Repositories & Services ────
	assistantRepo := repository.NewAssistantRepo(pool)
	personaService := services.NewPersonaService(cfg.DescriptionURL)
	chatService := services.NewChatService(assistantRepo, personaService, geminiService, sessionStore)
	speechService := services.NewSpeechService(cfg.TTSAPIKey, cfg.TTSVoice)
	if speechService.Enabled() {
		log.Printf("✓ Speech synthesis enabled (voice %s)", cfg.TTSVoice)
	} else {
		log.Println("  Speech synthesis disabled (TTS_API_KEY not set)")
	}

	// ──── Initialize Handlers ────
	assistantHandler := handlers.NewAssistantHandler(assistantRepo)
	chatHandler := handlers.NewChatHandler(chatService, speechService)
	speechHandler := handlers.NewSpeechHandler(speechService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(assistantHandler, chatHandler, speechHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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

	log.Printf("✓ Assistant Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
