package bot

import (
	"leadbot/internal/booking"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the subset of *tgbotapi.BotAPI used to talk to users
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot represents the Telegram bot wrapper
type Bot struct {
	api        Sender
	client     *tgbotapi.BotAPI // nil in tests
	machine    *booking.Machine
	limiter    *userLimiter // nil when rate limiting is off
	channelURL string
	logger     *zap.Logger
}
