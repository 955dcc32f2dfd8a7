package memory

import (
	"context"
	"leadbot/internal/models"
	"leadbot/internal/storage"
	"sync"
)

// Store is an in-memory implementation of storage.SessionStore
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]models.Session
}

// New creates an empty in-memory session store
func New() *Store {
	return &Store{
		sessions: make(map[int64]models.Session),
	}
}

// Get returns a copy of the stored session
func (s *Store) Get(ctx context.Context, userID int64) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, storage.ErrSessionNotFound
	}
	return &session, nil
}

// Set stores a copy of the session under its user id
func (s *Store) Set(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.UserID] = *session
	return nil
}

// Clear removes the user's session
func (s *Store) Clear(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

// Close does nothing for the in-memory store
func (s *Store) Close() error {
	return nil
}
