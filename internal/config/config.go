package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Prabhu-Raj-Samraj/Project-AQI/internal/aqi"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds server read/write and client request durations.
	HTTPTimeout time.Duration

	// WarmInterval controls how often the prediction cache is pre-warmed.
	WarmInterval time.Duration

	// Prediction cache retention.
	CacheMaxEntries int           // max cached payloads (0 = unlimited)
	CacheMaxAge     time.Duration // max age of cached payloads (0 = unlimited)

	// APIBaseURL is where the dashboard client finds the API server.
	APIBaseURL string

	// DefaultModel is used for cache warm-up and unspecified requests.
	DefaultModel aqi.Model
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.APIBaseURL = getenvDefault("AIRSIGHT_API_URL", "http://localhost:8080")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	// Warm-up interval: default 15 minutes.
	intervalStr := getenvDefault("WARM_INTERVAL", "15m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WARM_INTERVAL: %w", err)
	}
	cfg.WarmInterval = interval

	// Cache retention.
	cfg.CacheMaxEntries = getenvInt("CACHE_MAX_ENTRIES", 512)

	maxAgeStr := getenvDefault("CACHE_MAX_AGE", "24h")
	maxAge, err := time.ParseDuration(maxAgeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_MAX_AGE: %w", err)
	}
	cfg.CacheMaxAge = maxAge

	model := aqi.Model(getenvDefault("AIRSIGHT_DEFAULT_MODEL", string(aqi.BestModel)))
	if !model.Valid() {
		return nil, fmt.Errorf("invalid AIRSIGHT_DEFAULT_MODEL: %q", model)
	}
	cfg.DefaultModel = model

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
