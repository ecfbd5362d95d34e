package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         int
	LogLevel     string
	DevMode      bool
	DatabasePath string

	// Provider endpoints. Overridable so tests and mirrors can point the
	// clients elsewhere.
	MarketDataURL   string
	FundamentalsURL string
	NewsFeedURL     string

	// Fundamentals provider credential, injected via environment and
	// never hard-coded.
	AlphaVantageAPIKey string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// RequestLogRetentionDays controls how long report request rows are
	// kept before the nightly prune deletes them.
	RequestLogRetentionDays int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:                    getEnvAsInt("PORT", 8080),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		DevMode:                 getEnvAsBool("DEV_MODE", false),
		DatabasePath:            getEnv("DATABASE_PATH", "./data/dashboard.db"),
		MarketDataURL:           getEnv("MARKET_DATA_URL", "https://query1.finance.yahoo.com"),
		FundamentalsURL:         getEnv("FUNDAMENTALS_URL", "https://www.alphavantage.co"),
		NewsFeedURL:             getEnv("NEWS_FEED_URL", ""),
		AlphaVantageAPIKey:      getEnv("ALPHAVANTAGE_API_KEY", ""),
		HTTPTimeout:             time.Duration(getEnvAsInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		RequestLogRetentionDays: getEnvAsInt("REQUEST_LOG_RETENTION_DAYS", 30),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}

	if c.RequestLogRetentionDays < 1 {
		return fmt.Errorf("REQUEST_LOG_RETENTION_DAYS must be at least 1")
	}

	// ALPHAVANTAGE_API_KEY and NEWS_FEED_URL are optional: without them
	// the fundamentals and news sections report their own failures while
	// the price pipeline keeps working.

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
