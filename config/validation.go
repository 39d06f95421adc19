package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT must not be empty")
	}
	if cfg.FetchMaxBytes <= 0 {
		errors = append(errors, "FETCH_MAX_BYTES must be positive")
	}
	if cfg.FetchTimeout <= 0 {
		errors = append(errors, "FETCH_TIMEOUT must be positive")
	}
	if cfg.ScrapeRateLimit <= 0 {
		errors = append(errors, "SCRAPE_RATE_LIMIT must be positive")
	}
	// DEEPSEEK_API_KEY is deliberately optional: without it the smart-scale
	// endpoint degrades to deterministic scaling plus canned tips.

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
