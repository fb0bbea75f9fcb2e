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

	"github.com/redis/go-redis/v9"

	"converter-backend/internal/config"
	"converter-backend/internal/database"
	"converter-backend/internal/handlers"
	"converter-backend/internal/repository"
	"converter-backend/internal/router"
	"converter-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Everything Converter Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Optional PostgreSQL Conversion Log ────
	var conversionRepo *repository.ConversionRepo
	if cfg.DatabaseURL != "" {
		pool, err := database.NewPostgresPool(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("✗ PostgreSQL connection failed: %v", err)
		}
		defer pool.Close()

		if err := database.Bootstrap(pool); err != nil {
			log.Fatalf("✗ Database bootstrap failed: %v", err)
		}

		conversionRepo = repository.NewConversionRepo(pool)
		log.Println("✓ PostgreSQL connected, conversion log enabled")
	} else {
		log.Println("- DATABASE_URL not set, conversion log disabled")
	}

	// ──── Step 3: Optional Redis Suggestion Cache ────
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer client.Close()

		redisClient = client
		log.Println("✓ Redis connected, suggestion cache enabled")
	} else {
		log.Println("- REDIS_URL not set, suggestion cache disabled")
	}

	// ──── Step 4: Initialize Services ────
	openRouterService := services.NewOpenRouterService(cfg)
	rateService := services.NewRateService(cfg.ExchangeRatesAPIKey)
	validatorService := services.NewValidatorService(openRouterService)
	suggestionService := services.NewSuggestionService(openRouterService, redisClient)
	log.Println("✓ OpenRouter client initialized")

	if cfg.ExchangeRatesAPIKey == "" {
		log.Println("- OPEN_EXCHANGE_RATES_API_KEY not set, currency quotes unavailable")
	}

	// ──── Step 5: Initialize Handlers ────
	var recorder *repository.ConversionRepo
	var historyHandler *handlers.HistoryHandler
	if conversionRepo != nil {
		recorder = conversionRepo
		historyHandler = handlers.NewHistoryHandler(conversionRepo)
	}

	chatHandler := newChatHandler(openRouterService, rateService, validatorService, recorder)
	exchangeRatesHandler := handlers.NewExchangeRatesHandler(rateService)
	suggestionsHandler := handlers.NewSuggestionsHandler(suggestionService)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		chatHandler,
		exchangeRatesHandler,
		suggestionsHandler,
		historyHandler,
		cfg.FrontendURL,
		cfg.ChatRequestsPerMin,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // streaming completions are slow
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

	log.Printf("✓ Everything Converter Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

// newChatHandler avoids handing a typed-nil recorder to the handler when the
// conversion log is disabled.
func newChatHandler(
	openrouter *services.OpenRouterService,
	rates *services.RateService,
	validator *services.ValidatorService,
	recorder *repository.ConversionRepo,
) *handlers.ChatHandler {
	if recorder == nil {
		return handlers.NewChatHandler(openrouter, rates, validator, nil)
	}
	return handlers.NewChatHandler(openrouter, rates, validator, recorder)
}
