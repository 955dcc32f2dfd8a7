package bot

import (
	"leadbot/internal/booking"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// render delivers replies in order. Edits target source, the message whose
// button was pressed; without a source they degrade to new messages.
func (b *Bot) render(chatID int64, source *tgbotapi.Message, replies []booking.Reply) {
	for _, r := range replies {
		switch r.Kind {
		case booking.ReplyEditSource:
			if source == nil {
				b.sendMessage(newMessage(chatID, r))
				continue
			}
			b.request(tgbotapi.NewEditMessageText(chatID, source.MessageID, r.Text))
		case booking.ReplyClearSourceMarkup:
			if source == nil {
				continue
			}
			b.request(tgbotapi.NewEditMessageReplyMarkup(chatID, source.MessageID, tgbotapi.InlineKeyboardMarkup{
				InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
			}))
		default:
			b.sendMessage(newMessage(chatID, r))
		}
	}
}

func newMessage(chatID int64, r booking.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	switch {
	case len(r.Buttons) > 0:
		msg.ReplyMarkup = inlineKeyboard(r.Buttons)
	case r.ContactButton != "":
		keyboard := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(r.ContactButton)),
		)
		keyboard.OneTimeKeyboard = true
		keyboard.ResizeKeyboard = true
		msg.ReplyMarkup = keyboard
	case r.RemoveKeyboard:
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	}
	return msg
}

func inlineKeyboard(rows [][]booking.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			if button.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(button.Text, button.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.Data))
			}
		}
		keyboard = append(keyboard, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

func (b *Bot) sendText(chatID int64, text string) {
	b.sendMessage(tgbotapi.NewMessage(chatID, text))
}

// sendMessage sends a message and logs any error
func (b *Bot) sendMessage(msg tgbotapi.Chattable) {
	if b.api == nil {
		return // For testing
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Error(err))
	}
}

// request performs calls whose result is not a message, such as edits
func (b *Bot) request(c tgbotapi.Chattable) {
	if b.api == nil {
		return
	}
	if _, err := b.api.Request(c); err != nil {
		b.logger.Error("Failed to perform request", zap.Error(err))
	}
}
