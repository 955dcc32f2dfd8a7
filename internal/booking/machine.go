// Package booking implements the conversation that collects a booking lead.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadbot/internal/catalog"
	"leadbot/internal/models"
	"leadbot/internal/storage"
	"leadbot/internal/summary"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier receives submitted leads
type Notifier interface {
	Notify(ctx context.Context, lead models.Lead) error
}

// negativeComments are answers that mean "no comment"
var negativeComments = map[string]bool{
	"нет":  true,
	"не":   true,
	"no":   true,
	"none": true,
}

// Machine drives the booking dialogue for every user
type Machine struct {
	store    storage.SessionStore
	notifier Notifier
	logger   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewMachine creates a machine backed by store that hands leads to notifier
func NewMachine(store storage.SessionStore, notifier Notifier, logger *zap.Logger) *Machine {
	return &Machine{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Handle applies ev to the user's session and returns the replies to emit.
// Events that match no transition come back with Handled false and leave the
// session untouched.
func (m *Machine) Handle(ctx context.Context, ev Event) (Result, error) {
	session, err := m.load(ctx, ev.UserID)
	if err != nil {
		return Result{}, err
	}

	switch ev.Kind {
	case EventBegin:
		return m.begin(ctx, ev, session)
	case EventCancel:
		return m.cancel(ctx, ev, session)
	}

	if session == nil || !State(session.State).Active() {
		return Result{}, nil
	}

	from := State(session.State)
	var res Result
	switch from {
	case StateName:
		res, err = m.onName(ctx, ev, session)
	case StatePhone:
		res, err = m.onPhone(ctx, ev, session)
	case StateTime:
		res, err = m.onTime(ctx, ev, session)
	case StateAddress:
		res, err = m.onAddress(ctx, ev, session)
	case StateFormat, StateFormatEdit:
		res, err = m.onFormat(ctx, ev, session)
	case StateComment:
		res, err = m.onComment(ctx, ev, session)
	case StateReview:
		res, err = m.onReview(ctx, ev, session)
	case StateEditMenu:
		res, err = m.onEditMenu(ctx, ev, session)
	case StateAwaitingNewValue:
		res, err = m.onNewValue(ctx, ev, session)
	}
	if err != nil {
		return Result{}, err
	}

	if res.Handled {
		m.logger.Debug("Booking event handled",
			zap.Int64("user_id", ev.UserID),
			zap.Stringer("event", ev.Kind),
			zap.String("from", string(from)),
			zap.String("to", session.State))
	}
	return res, nil
}

// Active reports whether the user is in the middle of a booking
func (m *Machine) Active(ctx context.Context, userID int64) (bool, error) {
	session, err := m.load(ctx, userID)
	if err != nil {
		return false, err
	}
	return session != nil && State(session.State).Active(), nil
}

// PreselectFormat stores a format chosen outside the dialogue so the address
// step can skip the catalog later. It is the fallback for format callbacks
// that Handle declined. Once the address has been answered the format belongs
// to the dialogue, so stale catalog presses are declined.
func (m *Machine) PreselectFormat(ctx context.Context, ev Event) (Result, error) {
	id, ok := catalog.ParseCallback(ev.Data)
	if !ok {
		return Result{}, nil
	}

	session, err := m.load(ctx, ev.UserID)
	if err != nil {
		return Result{}, err
	}
	if session == nil {
		session = &models.Session{UserID: ev.UserID, State: string(StateIdle)}
	}

	state := State(session.State)
	if !state.acceptsPreselection() {
		m.logger.Debug("Stale format press declined",
			zap.Int64("user_id", ev.UserID),
			zap.String("state", session.State))
		return Result{}, nil
	}

	entry := catalog.Lookup(id)
	session.Fields.SetFormat(entry.Label, entry.Price)
	if err := m.save(ctx, session); err != nil {
		return Result{}, err
	}

	m.logger.Info("Format preselected",
		zap.Int64("user_id", ev.UserID),
		zap.String("format", entry.ID),
		zap.String("state", session.State))

	ack := textFormatSaved
	if state.Active() {
		ack = textFormatSavedInFlow
	}
	return handled(
		Reply{Kind: ReplyEditSource, Text: fmt.Sprintf(textFormatSelected, summary.FormatLine(session.Fields))},
		send(ack),
	), nil
}

func (m *Machine) begin(ctx context.Context, ev Event, prev *models.Session) (Result, error) {
	session := &models.Session{UserID: ev.UserID, State: string(StateName)}

	// a format picked from the main menu survives entry, a half-finished booking does not
	if prev != nil && State(prev.State) == StateIdle && prev.Fields.HasFormat() {
		session.Fields.SetFormat(prev.Fields.FormatLabel, prev.Fields.FormatPrice)
	}

	if err := m.save(ctx, session); err != nil {
		return Result{}, err
	}

	m.logger.Info("Booking started",
		zap.Int64("user_id", ev.UserID),
		zap.Bool("format_preselected", session.Fields.HasFormat()))

	return handled(send(textNamePrompt)), nil
}

func (m *Machine) cancel(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	if session == nil {
		return handled(Reply{Kind: ReplySend, Text: textNothingCancel, RemoveKeyboard: true}), nil
	}

	// an idle session only holds a preselected format; drop it too
	if !State(session.State).Active() {
		if err := m.clear(ctx, ev.UserID); err != nil {
			return Result{}, err
		}
		return handled(Reply{Kind: ReplySend, Text: textNothingCancel, RemoveKeyboard: true}), nil
	}

	if err := m.clear(ctx, ev.UserID); err != nil {
		return Result{}, err
	}

	m.logger.Info("Booking cancelled",
		zap.Int64("user_id", ev.UserID),
		zap.String("state", session.State))

	return handled(Reply{Kind: ReplySend, Text: textCancelled, RemoveKeyboard: true}), nil
}

func (m *Machine) onName(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	if ev.Kind != EventText {
		return Result{}, nil
	}

	session.Fields.Name = strings.TrimSpace(ev.Text)
	if err := m.advance(ctx, session, StatePhone); err != nil {
		return Result{}, err
	}
	return handled(Reply{Kind: ReplySend, Text: textPhonePrompt, ContactButton: textContactButton}), nil
}

func (m *Machine) onPhone(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	phone, ok := phoneInput(ev)
	if !ok {
		return Result{}, nil
	}

	session.Fields.Phone = phone
	if err := m.advance(ctx, session, StateTime); err != nil {
		return Result{}, err
	}
	return handled(Reply{Kind: ReplySend, Text: textTimePrompt, RemoveKeyboard: true}), nil
}

func (m *Machine) onTime(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	if ev.Kind != EventText {
		return Result{}, nil
	}

	session.Fields.Time = strings.TrimSpace(ev.Text)
	if err := m.advance(ctx, session, StateAddress); err != nil {
		return Result{}, err
	}
	return handled(send(textAddressPrompt)), nil
}

func (m *Machine) onAddress(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	if ev.Kind != EventText {
		return Result{}, nil
	}

	session.Fields.Address = strings.TrimSpace(ev.Text)

	if session.Fields.HasFormat() {
		if err := m.advance(ctx, session, StateComment); err != nil {
			return Result{}, err
		}
		return handled(send(textCommentPrompt)), nil
	}

	if err := m.advance(ctx, session, StateFormat); err != nil {
		return Result{}, err
	}
	return handled(CatalogReply()), nil
}

// onFormat serves both the first selection and the edit path. The edit marker
// decides whether the dialogue continues to the comment or returns to review.
func (m *Machine) onFormat(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	if ev.Kind != EventCallback {
		return Result{}, nil
	}
	id, ok := catalog.ParseCallback(ev.Data)
	if !ok {
		return Result{}, nil
	}

	entry := catalog.Lookup(id)
	session.Fields.SetFormat(entry.Label, entry.Price)
	selected := Reply{Kind: ReplyEditSource, Text: fmt.Sprintf(textFormatSelected, summary.FormatLine(session.Fields))}

	if Field(session.Editing) == FieldFormat {
		session.Editing = ""
		if err := m.advance(ctx, session, StateReview); err != nil {
			return Result{}, err
		}
		return handled(selected, reviewReply(session.Fields, summary.UpdatedPrefix)), nil
	}

	if err := m.advance(ctx, session, StateComment); err != nil {
		return Result{}, err
	}
	return handled(selected, send(textCommentPrompt)), nil
}

func (m *Machine) onComment(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	switch ev.Kind {
	case EventText:
		session.Fields.Comment = normalizeComment(ev.Text)
	case EventSkip:
		session.Fields.Comment = ""
	default:
		return Result{}, nil
	}

	if err := m.advance(ctx, session, StateReview); err != nil {
		return Result{}, err
	}
	return handled(reviewReply(session.Fields, summary.ReviewPrefix)), nil
}

func (m *Machine) onReview(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	if ev.Kind != EventCallback {
		return Result{}, nil
	}

	switch ev.Data {
	case CallbackConfirm:
		return m.submit(ctx, ev, session)
	case CallbackEdit:
		if err := m.advance(ctx, session, StateEditMenu); err != nil {
			return Result{}, err
		}
		return handled(
			Reply{Kind: ReplyClearSourceMarkup},
			Reply{Kind: ReplySend, Text: textEditMenu, Buttons: editMenuButtons()},
		), nil
	}
	return Result{}, nil
}

func (m *Machine) onEditMenu(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	if ev.Kind != EventCallback {
		return Result{}, nil
	}

	if ev.Data == CallbackBackToConfirm {
		if err := m.advance(ctx, session, StateReview); err != nil {
			return Result{}, err
		}
		return handled(reviewReply(session.Fields, summary.ReviewPrefix)), nil
	}

	field, ok := parseEditCallback(ev.Data)
	if !ok {
		return Result{}, nil
	}

	session.Editing = string(field)
	if field == FieldFormat {
		if err := m.advance(ctx, session, StateFormatEdit); err != nil {
			return Result{}, err
		}
		return handled(Reply{Kind: ReplySend, Text: field.EditPrompt(), Buttons: CatalogButtons()}), nil
	}

	if err := m.advance(ctx, session, StateAwaitingNewValue); err != nil {
		return Result{}, err
	}
	return handled(send(field.EditPrompt())), nil
}

func (m *Machine) onNewValue(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	field, err := ParseField(session.Editing)
	if err != nil {
		return Result{}, fmt.Errorf("session %d awaits a value without a valid field: %w", session.UserID, err)
	}

	var value string
	switch {
	case ev.Kind == EventText:
		value = strings.TrimSpace(ev.Text)
	case ev.Kind == EventContact && field == FieldPhone:
		value = strings.TrimSpace(ev.Phone)
	case ev.Kind == EventSkip && field == FieldComment:
		value = ""
	default:
		return Result{}, nil
	}

	if err := field.Apply(&session.Fields, value); err != nil {
		return Result{}, err
	}
	session.Editing = ""
	if err := m.advance(ctx, session, StateReview); err != nil {
		return Result{}, err
	}

	return handled(reviewReply(session.Fields, summary.UpdatedPrefix)), nil
}

func (m *Machine) submit(ctx context.Context, ev Event, session *models.Session) (Result, error) {
	// text steps accept empty answers, so only the format can be missing
	if !session.Fields.HasFormat() {
		m.logger.Warn("Confirmation without a format, asking for one", zap.Int64("user_id", ev.UserID))
		session.Editing = string(FieldFormat)
		if err := m.advance(ctx, session, StateFormatEdit); err != nil {
			return Result{}, err
		}
		return handled(Reply{Kind: ReplySend, Text: FieldFormat.EditPrompt(), Buttons: CatalogButtons()}), nil
	}

	lead := models.Lead{
		ID:          m.newID(),
		Fields:      session.Fields,
		Submitter:   ev.Submitter,
		SubmittedAt: m.now(),
	}

	if err := m.notifier.Notify(ctx, lead); err != nil {
		m.logger.Error("Failed to dispatch lead",
			zap.String("lead_id", lead.ID),
			zap.Int64("user_id", ev.UserID),
			zap.Error(err))
	} else {
		m.logger.Info("Lead submitted",
			zap.String("lead_id", lead.ID),
			zap.Int64("user_id", ev.UserID))
	}

	// the lead is already out, so a failed clear must not turn into a retry
	if err := m.clear(ctx, ev.UserID); err != nil {
		m.logger.Error("Failed to clear submitted session", zap.Int64("user_id", ev.UserID), zap.Error(err))
	}
	session.State = string(StateIdle)

	return handled(Reply{Kind: ReplySend, Text: textSubmitted, RemoveKeyboard: true}), nil
}

func (m *Machine) load(ctx context.Context, userID int64) (*models.Session, error) {
	session, err := m.store.Get(ctx, userID)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

func (m *Machine) advance(ctx context.Context, session *models.Session, next State) error {
	session.State = string(next)
	if !next.editing() {
		session.Editing = ""
	}
	return m.save(ctx, session)
}

func (m *Machine) save(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = m.now()
	if err := m.store.Set(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (m *Machine) clear(ctx context.Context, userID int64) error {
	if err := m.store.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func phoneInput(ev Event) (string, bool) {
	switch ev.Kind {
	case EventContact:
		return strings.TrimSpace(ev.Phone), true
	case EventText:
		return strings.TrimSpace(ev.Text), true
	}
	return "", false
}

func normalizeComment(text string) string {
	comment := strings.TrimSpace(text)
	if negativeComments[strings.ToLower(comment)] {
		return ""
	}
	return comment
}

func reviewReply(fields models.Fields, prefix string) Reply {
	return Reply{Kind: ReplySend, Text: summary.Compose(fields, prefix), Buttons: reviewButtons()}
}
