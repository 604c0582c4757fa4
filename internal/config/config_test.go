package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GITHUB_CARD_CACHE_TTL", "")
	t.Setenv("GITHUB_CARD_CACHE_DIR", "")
	t.Setenv("GITHUB_CARD_REDIS_URL", "")
	t.Setenv("GITHUB_CARD_SHARE_URL", "")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Empty(t, cfg.CacheDir)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.ShareURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GITHUB_CARD_CACHE_TTL", "5m")
	t.Setenv("GITHUB_CARD_CACHE_DIR", "/tmp/cards")
	t.Setenv("GITHUB_CARD_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("GITHUB_CARD_SHARE_URL", "https://share.example.com/upload")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "/tmp/cards", cfg.CacheDir)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "https://share.example.com/upload", cfg.ShareURL)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("GITHUB_CARD_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestLoad_NonPositiveCacheTTLFallsBack(t *testing.T) {
	for _, raw := range []string{"0", "0s", "-5m"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("GITHUB_CARD_CACHE_TTL", raw)

			cfg := Load()

			assert.Equal(t, time.Hour, cfg.CacheTTL)
		})
	}
}

func TestToken(t *testing.T) {
	testCases := []struct {
		name     string
		primary  string
		fallback string
		expected string
	}{
		{name: "no credential", expected: ""},
		{name: "primary wins", primary: "ghp_a", fallback: "ghp_b", expected: "ghp_a"},
		{name: "fallback used", fallback: "ghp_b", expected: "ghp_b"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tc.primary)
			t.Setenv("GITHUB_ACCESS_TOKEN", tc.fallback)
			assert.Equal(t, tc.expected, Token())
		})
	}
}
