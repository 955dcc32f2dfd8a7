package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string

	// AdminChatID is a numeric chat id or "@channel"; empty disables forwarding
	AdminChatID string
	ChannelURL  string

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)
	Port        string

	// Session storage
	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionTTL     time.Duration

	LogLevel string

	RateLimitPerSecond float64
	RateLimitBurst     int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Bot token (required)
	config.TelegramToken = os.Getenv("BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	config.AdminChatID = strings.TrimSpace(os.Getenv("ADMIN_CHAT_ID"))
	config.ChannelURL = os.Getenv("CHANNEL_URL")

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = strings.TrimRight(os.Getenv("WEBHOOK_URL"), "/")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	config.Port = os.Getenv("PORT")
	if config.Port == "" {
		config.Port = "8080" // Default port
	}

	config.SessionBackend = os.Getenv("SESSION_BACKEND")
	if config.SessionBackend == "" {
		config.SessionBackend = BackendMemory
	}
	switch config.SessionBackend {
	case BackendMemory:
	case BackendRedis:
		config.RedisAddr = os.Getenv("REDIS_ADDR")
		if config.RedisAddr == "" {
			config.RedisAddr = "localhost:6379"
		}
		config.RedisPassword = os.Getenv("REDIS_PASSWORD")
		// Password is optional, can be empty

		if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
			db, err := strconv.Atoi(dbStr)
			if err != nil {
				return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
			}
			config.RedisDB = db
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q (expected %s or %s)", config.SessionBackend, BackendMemory, BackendRedis)
	}

	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		if ttl < 0 {
			return nil, fmt.Errorf("SESSION_TTL must not be negative")
		}
		config.SessionTTL = ttl
	}

	config.LogLevel = os.Getenv("LOG_LEVEL")
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	if rateStr := os.Getenv("RATE_LIMIT_PER_SECOND"); rateStr != "" {
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_SECOND: %w", err)
		}
		config.RateLimitPerSecond = rate
	}

	config.RateLimitBurst = 3
	if burstStr := os.Getenv("RATE_LIMIT_BURST"); burstStr != "" {
		burst, err := strconv.Atoi(burstStr)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
		}
		config.RateLimitBurst = burst
	}

	return config, nil
}
