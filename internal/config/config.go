// Package config loads application settings from the process environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = 8080
	defaultCacheTTL = time.Hour
)

// Config holds application configuration.
// The GitHub credential is deliberately absent: it is read on every request with Token.
type Config struct {
	Port int

	CacheDir string
	// CacheTTL is always positive; zero or negative settings fall back to the default.
	CacheTTL time.Duration
	RedisURL string

	// ShareURL receives card share payloads. Empty means sharing is unavailable.
	ShareURL string
}

// Load reads configuration from environment variables, seeding them from a .env file when present.
func Load() *Config {
	_ = godotenv.Load()

	port := defaultPort
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			port = p
		}
	}

	ttl := defaultCacheTTL
	if ttlStr := os.Getenv("GITHUB_CARD_CACHE_TTL"); ttlStr != "" {
		if d, err := time.ParseDuration(ttlStr); err == nil && d > 0 {
			ttl = d
		}
	}

	return &Config{
		Port:     port,
		CacheDir: os.Getenv("GITHUB_CARD_CACHE_DIR"),
		CacheTTL: ttl,
		RedisURL: os.Getenv("GITHUB_CARD_REDIS_URL"),
		ShareURL: os.Getenv("GITHUB_CARD_SHARE_URL"),
	}
}

// Token returns the optional GitHub credential. An empty string means unauthenticated access.
func Token() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	return os.Getenv("GITHUB_ACCESS_TOKEN")
}
