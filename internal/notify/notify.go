// Package notify forwards submitted leads to the operator chat.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"leadbot/internal/models"
	"leadbot/internal/summary"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the subset of *tgbotapi.BotAPI used for delivery
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts leads to a chat or channel
type Telegram struct {
	sender Sender
	chatID int64
	// channel is used instead of chatID for "@name" destinations
	channel string
	logger  *zap.Logger
}

// NewTelegram accepts a numeric chat id or a "@channel" username
func NewTelegram(sender Sender, destination string, logger *zap.Logger) (*Telegram, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("operator destination is empty")
	}

	t := &Telegram{sender: sender, logger: logger}
	if id, err := strconv.ParseInt(destination, 10, 64); err == nil {
		t.chatID = id
	} else {
		t.channel = destination
	}
	return t, nil
}

// Notify makes a single delivery attempt
func (t *Telegram) Notify(ctx context.Context, lead models.Lead) error {
	text := summary.OperatorMessage(lead)

	var msg tgbotapi.MessageConfig
	if t.channel != "" {
		msg = tgbotapi.NewMessageToChannel(t.channel, text)
	} else {
		msg = tgbotapi.NewMessage(t.chatID, text)
	}

	if _, err := t.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send lead %s to operator: %w", lead.ID, err)
	}

	t.logger.Debug("Lead delivered to operator", zap.String("lead_id", lead.ID))
	return nil
}

// Nop drops leads when no operator destination is configured
type Nop struct {
	logger *zap.Logger
}

// NewNop creates a notifier that only logs
func NewNop(logger *zap.Logger) *Nop {
	return &Nop{logger: logger}
}

// Notify logs that the lead was not forwarded
func (n *Nop) Notify(ctx context.Context, lead models.Lead) error {
	n.logger.Warn("ADMIN_CHAT_ID not set, lead not forwarded",
		zap.String("lead_id", lead.ID),
		zap.Int64("user_id", lead.Submitter.ID))
	return nil
}
