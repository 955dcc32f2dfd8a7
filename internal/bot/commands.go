package bot

import (
	"context"

	"leadbot/internal/booking"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const textUnknownCommand = "Неизвестная команда. Отправьте /start, чтобы открыть меню."

// handleCommand routes slash commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	ev := booking.Event{
		UserID:    message.From.ID,
		ChatID:    message.Chat.ID,
		Submitter: submitterOf(message.From),
	}

	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "cancel":
		ev.Kind = booking.EventCancel
		b.dispatch(ctx, ev, nil)
	case "skip":
		ev.Kind = booking.EventSkip
		b.dispatch(ctx, ev, nil)
	default:
		active, err := b.machine.Active(ctx, ev.UserID)
		if err != nil {
			b.failed(ev, err)
			return
		}
		// unknown commands are silently dropped in the middle of a booking
		if active {
			b.logger.Debug("Command ignored during booking",
				zap.Int64("user_id", ev.UserID),
				zap.String("command", message.Command()))
			return
		}
		b.sendText(ev.ChatID, textUnknownCommand)
	}
}

// handleStart shows the welcome message and main menu
func (b *Bot) handleStart(message *tgbotapi.Message) {
	b.render(message.Chat.ID, nil, []booking.Reply{b.welcomeReply()})
}
