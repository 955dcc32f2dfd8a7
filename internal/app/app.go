package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"leadbot/internal/booking"
	"leadbot/internal/bot"
	"leadbot/internal/config"
	"leadbot/internal/notify"
	"leadbot/internal/storage"
	"leadbot/internal/storage/memory"
	"leadbot/internal/storage/rdb"
)

// App represents the application
type App struct {
	config *config.Config
	logger *zap.Logger
	store  storage.SessionStore
	api    *tgbotapi.BotAPI
	bot    *bot.Bot
	server *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates and initializes a new application instance
func New() (*App, error) {
	// Load .env file if it exists
	envErr := godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	if envErr != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{config: cfg, logger: logger, ctx: ctx, cancel: cancel}

	logger.Info("Starting lead bot...")

	if err := app.initStore(); err != nil {
		cancel()
		return nil, err
	}

	if err := app.initBot(); err != nil {
		cancel()
		_ = app.store.Close()
		return nil, err
	}

	app.initHTTPServer()

	return app, nil
}

// NewLogger builds a production logger, or a development one for "debug"
func NewLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}

	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = atomic
	return cfg.Build()
}

// initStore opens the session store
func (a *App) initStore() error {
	switch a.config.SessionBackend {
	case config.BackendRedis:
		a.logger.Info("Connecting to Redis session store",
			zap.String("addr", a.config.RedisAddr),
			zap.Int("db", a.config.RedisDB),
			zap.Duration("ttl", a.config.SessionTTL))

		ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
		defer cancel()
		store, err := rdb.Connect(ctx, rdb.Options{
			Addr:     a.config.RedisAddr,
			Password: a.config.RedisPassword,
			DB:       a.config.RedisDB,
			TTL:      a.config.SessionTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		a.store = store
	default:
		if a.config.SessionTTL > 0 {
			a.logger.Warn("SESSION_TTL is ignored by the in-memory session store")
		}
		a.logger.Info("Using in-memory session store")
		a.store = memory.New()
	}
	return nil
}

// initBot wires the Telegram client, operator notifier and booking dialogue
func (a *App) initBot() error {
	api, err := bot.NewAPI(a.config.TelegramToken, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	a.api = api

	var notifier booking.Notifier
	if a.config.AdminChatID == "" {
		a.logger.Warn("ADMIN_CHAT_ID not set, leads will not be forwarded")
		notifier = notify.NewNop(a.logger)
	} else {
		telegram, err := notify.NewTelegram(api, a.config.AdminChatID, a.logger)
		if err != nil {
			return fmt.Errorf("failed to create operator notifier: %w", err)
		}
		notifier = telegram
		a.logger.Info("Leads will be forwarded", zap.String("admin_chat_id", a.config.AdminChatID))
	}

	machine := booking.NewMachine(a.store, notifier, a.logger.Named("booking"))
	a.bot = bot.NewBot(api, machine, bot.Options{
		ChannelURL:    a.config.ChannelURL,
		RatePerSecond: a.config.RateLimitPerSecond,
		RateBurst:     a.config.RateLimitBurst,
	}, a.logger.Named("bot"))
	return nil
}

// initHTTPServer initializes the HTTP server for health checks and webhook
func (a *App) initHTTPServer() {
	mux := http.NewServeMux()
	bot.NewHTTPServer(a.ctx, a.bot, a.config.WebhookMode).RegisterRoutes(mux)

	a.server = &http.Server{
		Addr:         ":" + a.config.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start HTTP server in background
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", a.config.Port))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("HTTP server error", zap.Error(err))
		}
	}()
}

// Run starts the application and blocks until shutdown
func (a *App) Run() error {
	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start bot in appropriate mode
	if a.config.WebhookMode {
		a.logger.Info("Starting bot in WEBHOOK mode", zap.String("webhook_url", a.config.WebhookURL))
		if err := a.bot.StartWebhook(a.config.WebhookURL); err != nil {
			return fmt.Errorf("failed to setup webhook: %w", err)
		}
		a.logger.Info("Webhook configured", zap.String("path", bot.WebhookPath))
	} else {
		go func() {
			if err := a.bot.Start(a.ctx); err != nil {
				a.logger.Error("Polling stopped", zap.Error(err))
			}
		}()
	}

	// Wait for interrupt signal
	<-sigChan

	a.logger.Info("Shutting down...")
	return a.Shutdown()
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown() error {
	a.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := a.store.Close(); err != nil {
		a.logger.Error("Error closing session store", zap.Error(err))
		return err
	}

	a.logger.Info("Shutdown complete")
	_ = a.logger.Sync()
	return nil
}
