package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port        string
	Environment string

	FrontendURL string

	DatabaseURL string
	RedisURL    string

	JWTSecret []byte

	// Fixed-window rate limiting, per route class
	RateLimitWindow       time.Duration
	RateLimitAPIBudget    int
	RateLimitTrendsBudget int

	TwitterBearerToken string

	LogLevel string
	LogFile  string
}

// Load reads configuration from the environment. A .env file is honored when
// present but never required.
func Load() (*Config, error) {
	// .env is optional; the system environment wins either way
	_ = godotenv.Load()

	cfg := &Config{
		Port:                  getEnvOrDefault("PORT", "8000"),
		Environment:           getEnvOrDefault("ENVIRONMENT", "development"),
		FrontendURL:           getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		RedisURL:              os.Getenv("REDIS_URL"),
		JWTSecret:             []byte(os.Getenv("JWT_SECRET")),
		RateLimitWindow:       getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		RateLimitAPIBudget:    getEnvInt("RATE_LIMIT_API_BUDGET", 100),
		RateLimitTrendsBudget: getEnvInt("RATE_LIMIT_TRENDS_BUDGET", 50),
		TwitterBearerToken:    os.Getenv("TWITTER_BEARER_TOKEN"),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		LogFile:               getEnvOrDefault("LOG_FILE", "server.log"),
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
// Development responses include error detail; production responses don't.
func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
