package storage

import (
	"context"
	"errors"

	"leadbot/internal/models"
)

// ErrSessionNotFound is returned by Get when the user has no session
var ErrSessionNotFound = errors.New("session not found")

// SessionStore defines the interface for per-user booking session storage
type SessionStore interface {
	// Get returns a copy of the user's session or ErrSessionNotFound
	Get(ctx context.Context, userID int64) (*models.Session, error)
	// Set replaces the user's session
	Set(ctx context.Context, session *models.Session) error
	// Clear removes the user's session; clearing a missing session is not an error
	Clear(ctx context.Context, userID int64) error

	// Lifecycle
	Close() error
}
