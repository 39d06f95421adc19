package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_PORT", "SERVER_HOST",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_URL",
		"DEEPSEEK_API_KEY", "DEEPSEEK_API_URL", "DEEPSEEK_MODEL",
		"FETCH_MAX_BYTES", "FETCH_TIMEOUT",
		"SCRAPE_RATE_LIMIT", "SCRAPE_RATE_WINDOW",
		"ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, int64(2_000_000), cfg.FetchMaxBytes)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 30, cfg.ScrapeRateLimit)
	assert.Equal(t, time.Hour, cfg.ScrapeRateWindow)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "deepseek-chat", cfg.DeepSeekModel)
	assert.False(t, cfg.RedisConfigured())
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("FETCH_MAX_BYTES", "500000")
	t.Setenv("FETCH_TIMEOUT", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "redis.internal", cfg.RedisHost)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, int64(500_000), cfg.FetchMaxBytes)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
	assert.True(t, cfg.RedisConfigured())
}

func TestLoadConfigInvalidRedisDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		ServerPort:      "8080",
		FetchMaxBytes:   1000,
		FetchTimeout:    time.Second,
		ScrapeRateLimit: 10,
	}
	assert.NoError(t, ValidateConfig(valid))

	t.Run("missing port", func(t *testing.T) {
		cfg := *valid
		cfg.ServerPort = ""
		err := ValidateConfig(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SERVER_PORT")
	})

	t.Run("bad fetch limits", func(t *testing.T) {
		cfg := *valid
		cfg.FetchMaxBytes = 0
		cfg.FetchTimeout = 0
		err := ValidateConfig(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FETCH_MAX_BYTES")
		assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
	})

	t.Run("api key is optional", func(t *testing.T) {
		cfg := *valid
		cfg.DeepSeekAPIKey = ""
		assert.NoError(t, ValidateConfig(&cfg))
	})
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b "))
	assert.Equal(t, []string{"a"}, splitAndTrim("a,,"))
	assert.Empty(t, splitAndTrim(" , "))
}
