package bot

import (
	"fmt"

	"leadbot/internal/booking"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Options tunes optional bot behaviour
type Options struct {
	ChannelURL string

	// RatePerSecond of zero disables per-user rate limiting
	RatePerSecond float64
	RateBurst     int
}

// NewAPI authenticates token against Telegram
func NewAPI(token string, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Error("Failed to create bot API", zap.Error(err))
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot API authorized", zap.String("bot_username", api.Self.UserName))
	return api, nil
}

// NewBot creates a new Telegram bot on top of an authorized API client
func NewBot(api *tgbotapi.BotAPI, machine *booking.Machine, opts Options, logger *zap.Logger) *Bot {
	b := newBot(api, machine, opts, logger)
	b.client = api
	return b
}

func newBot(api Sender, machine *booking.Machine, opts Options, logger *zap.Logger) *Bot {
	return &Bot{
		api:        api,
		machine:    machine,
		limiter:    newUserLimiter(opts.RatePerSecond, opts.RateBurst),
		channelURL: opts.ChannelURL,
		logger:     logger,
	}
}
