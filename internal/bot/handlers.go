package bot

import (
	"context"

	"leadbot/internal/booking"
	"leadbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	textInternalError = "Произошла ошибка. Пожалуйста, попробуйте ещё раз."
	textSlowDown      = "Слишком много сообщений. Подождите немного и попробуйте снова."
)

// handleMessage processes a single message
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			b.sendText(message.Chat.ID, textInternalError)
		}
	}()

	if message.From == nil {
		return
	}
	userID := message.From.ID
	chatID := message.Chat.ID

	if !b.limiter.Allow(userID) {
		b.logger.Warn("Rate limit exceeded", zap.Int64("user_id", userID), zap.Int64("chat_id", chatID))
		b.sendText(chatID, textSlowDown)
		return
	}

	// Commands never reach the dialogue as free text
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	ev := booking.Event{
		UserID:    userID,
		ChatID:    chatID,
		Submitter: submitterOf(message.From),
	}
	switch {
	case message.Contact != nil:
		ev.Kind = booking.EventContact
		ev.Phone = message.Contact.PhoneNumber
	case message.Text != "":
		ev.Kind = booking.EventText
		ev.Text = message.Text
	default:
		return
	}

	b.dispatch(ctx, ev, nil)
}

// dispatch feeds ev to the dialogue and renders whatever it replies
func (b *Bot) dispatch(ctx context.Context, ev booking.Event, source *tgbotapi.Message) booking.Result {
	res, err := b.machine.Handle(ctx, ev)
	if err != nil {
		b.failed(ev, err)
		// an error counts as handled so no fallback runs on a broken session
		return booking.Result{Handled: true}
	}
	b.render(ev.ChatID, source, res.Replies)
	return res
}

func (b *Bot) failed(ev booking.Event, err error) {
	b.logger.Error("Failed to handle booking event",
		zap.Int64("user_id", ev.UserID),
		zap.Stringer("event", ev.Kind),
		zap.String("callback_data", ev.Data),
		zap.Error(err))
	b.sendText(ev.ChatID, textInternalError)
}

func submitterOf(u *tgbotapi.User) models.Submitter {
	return models.Submitter{ID: u.ID, Username: u.UserName}
}
