// Package predictor provides a client for the remote apartment price prediction API.
package predictor

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration for the prediction API client.
type Config struct {
	BaseURL   string        // Base URL for the API (e.g., "http://localhost:7860")
	Timeout   time.Duration // HTTP request timeout
	RateLimit int           // Requests per minute, 0 disables throttling
}

// LoadConfig loads prediction API configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:   os.Getenv("PREDICTOR_BASE_URL"),
		Timeout:   15 * time.Second,
		RateLimit: 60,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:7860"
	}
	if d, err := time.ParseDuration(os.Getenv("PREDICTOR_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("PREDICTOR_RATE_LIMIT")); err == nil && n >= 0 {
		cfg.RateLimit = n
	}
	return cfg
}
