package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadFromEnv reads
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"BOT_TOKEN", "ADMIN_CHAT_ID", "CHANNEL_URL", "WEBHOOK_MODE", "WEBHOOK_URL", "PORT",
		"SESSION_BACKEND", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "SESSION_TTL",
		"LOG_LEVEL", "RATE_LIMIT_PER_SECOND", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.TelegramToken)
	assert.Empty(t, cfg.AdminChatID)
	assert.False(t, cfg.WebhookMode)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.SessionBackend)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.RateLimitPerSecond)
	assert.Equal(t, 3, cfg.RateLimitBurst)
}

func TestLoadFromEnv_MissingToken(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoadFromEnv_Redis(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "t")
	t.Setenv("ADMIN_CHAT_ID", " -100500 ")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_TTL", "24h")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "-100500", cfg.AdminChatID)
	assert.Equal(t, BackendRedis, cfg.SessionBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadFromEnv_Webhook(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "t")
	t.Setenv("WEBHOOK_MODE", "true")

	_, err := LoadFromEnv()
	require.Error(t, err)

	t.Setenv("WEBHOOK_URL", "https://bot.example.com/")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://bot.example.com", cfg.WebhookURL)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	testCases := []struct {
		key   string
		value string
	}{
		{"SESSION_BACKEND", "badger"},
		{"SESSION_TTL", "soon"},
		{"SESSION_TTL", "-1h"},
		{"RATE_LIMIT_PER_SECOND", "fast"},
		{"RATE_LIMIT_BURST", "many"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOT_TOKEN", "t")
			t.Setenv(tc.key, tc.value)

			_, err := LoadFromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoadFromEnv_InvalidRedisDB(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "t")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_DB", "zero")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}
