package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Redis configuration (optional; the smart-scale cache falls back to an
	// in-process store when no Redis is configured)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// DeepSeek configuration
	DeepSeekAPIKey string
	DeepSeekAPIURL string
	DeepSeekModel  string

	// Fetcher configuration
	FetchMaxBytes int64
	FetchTimeout  time.Duration

	// Rate limiting for the scrape endpoint (requests per window per IP)
	ScrapeRateLimit  int
	ScrapeRateWindow time.Duration

	// CORS
	AllowedOrigins []string
}

// LoadConfig creates a new Config instance from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		ServerHost:       getEnv("SERVER_HOST", "0.0.0.0"),
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisURL:         os.Getenv("REDIS_URL"),
		DeepSeekAPIKey:   os.Getenv("DEEPSEEK_API_KEY"),
		DeepSeekAPIURL:   getEnv("DEEPSEEK_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		DeepSeekModel:    getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
		FetchMaxBytes:    getEnvInt64("FETCH_MAX_BYTES", 2_000_000),
		FetchTimeout:     getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		ScrapeRateLimit:  int(getEnvInt64("SCRAPE_RATE_LIMIT", 30)),
		ScrapeRateWindow: getEnvDuration("SCRAPE_RATE_WINDOW", time.Hour),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	} else {
		cfg.AllowedOrigins = []string{"http://localhost:5173"}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RedisConfigured reports whether a Redis backend was provided.
func (c *Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
