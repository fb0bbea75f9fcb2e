package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// OpenRouter
	OpenRouterAPIKey   string
	OpenRouterBaseURL  string
	OpenRouterModel    string
	OpenRouterReferrer string
	OpenRouterSiteName string

	// Open Exchange Rates
	ExchangeRatesAPIKey string

	// Optional stores
	DatabaseURL string
	RedisURL    string

	// Frontend
	FrontendURL string

	// Throttling
	ChatRequestsPerMin int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		Env:                 getEnvOrDefault("ENV", "development"),
		OpenRouterAPIKey:    mustGetEnv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL:   getEnvOrDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		OpenRouterModel:     getEnvOrDefault("OPENROUTER_MODEL", "openai/gpt-5"),
		OpenRouterReferrer:  getEnvOrDefault("OPENROUTER_REFERRER", ""),
		OpenRouterSiteName:  getEnvOrDefault("OPENROUTER_SITE_NAME", "everything-converter"),
		ExchangeRatesAPIKey: getEnvOrDefault("OPEN_EXCHANGE_RATES_API_KEY", ""),
		DatabaseURL:         getEnvOrDefault("DATABASE_URL", ""),
		RedisURL:            getEnvOrDefault("REDIS_URL", ""),
		FrontendURL:         getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		ChatRequestsPerMin:  getEnvAsIntOrDefault("CHAT_REQUESTS_PER_MINUTE", 30),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
