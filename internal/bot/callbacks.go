package bot

import (
	"context"

	"leadbot/internal/booking"
	"leadbot/internal/catalog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	// Answer the callback query to remove loading state
	callback := tgbotapi.NewCallback(query.ID, "")
	if b.api != nil {
		if _, err := b.api.Request(callback); err != nil {
			b.logger.Warn("Failed to answer callback", zap.Error(err))
		}
	}

	if query.Message == nil || query.From == nil {
		return
	}
	if !b.limiter.Allow(query.From.ID) {
		b.logger.Warn("Rate limit exceeded", zap.Int64("user_id", query.From.ID), zap.String("callback_data", query.Data))
		return
	}

	ev := booking.Event{
		Kind:      booking.EventCallback,
		UserID:    query.From.ID,
		ChatID:    query.Message.Chat.ID,
		Data:      query.Data,
		Submitter: submitterOf(query.From),
	}

	if b.handleMenuCallback(ctx, ev, query.Message) {
		return
	}

	// The dialogue gets the first chance; a declined format button falls
	// back to remembering the choice for a later booking.
	res := b.dispatch(ctx, ev, query.Message)
	if res.Handled {
		return
	}
	if _, ok := catalog.ParseCallback(ev.Data); ok {
		res, err := b.machine.PreselectFormat(ctx, ev)
		if err != nil {
			b.failed(ev, err)
			return
		}
		b.render(ev.ChatID, query.Message, res.Replies)
		return
	}

	b.logger.Debug("Callback ignored", zap.Int64("user_id", ev.UserID), zap.String("callback_data", ev.Data))
}

// handleMenuCallback serves the main menu buttons. It reports false for
// payloads that belong to the booking dialogue.
func (b *Bot) handleMenuCallback(ctx context.Context, ev booking.Event, source *tgbotapi.Message) bool {
	switch ev.Data {
	case callbackAbout:
		b.sendText(ev.ChatID, textAbout)
	case callbackBenefits:
		b.sendText(ev.ChatID, textBenefits)
	case callbackChooseFormat:
		b.render(ev.ChatID, source, []booking.Reply{booking.CatalogReply()})
	case callbackSignup:
		ev.Kind = booking.EventBegin
		b.dispatch(ctx, ev, source)
	default:
		return false
	}
	return true
}
