// Package rdb stores booking sessions in Redis as JSON documents.
package rdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"leadbot/internal/models"
	"leadbot/internal/storage"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "booking:session:"

// Store implements storage.SessionStore on top of a Redis client
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	// TTL of zero keeps sessions until they are cleared
	TTL time.Duration
}

// Connect opens a client and verifies the connection with PING
func Connect(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	return New(client, opts.TTL), nil
}

// New wraps an existing client
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(userID int64) string {
	return sessionPrefix + strconv.FormatInt(userID, 10)
}

// Get loads and decodes the user's session
func (s *Store) Get(ctx context.Context, userID int64) (*models.Session, error) {
	data, err := s.client.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %d: %w", userID, err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %d: %w", userID, err)
	}
	return &session, nil
}

// Set encodes the session and writes it with the configured TTL
func (s *Store) Set(ctx context.Context, session *models.Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %d: %w", session.UserID, err)
	}
	if err := s.client.Set(ctx, key(session.UserID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session %d: %w", session.UserID, err)
	}
	return nil
}

// Clear deletes the user's session key
func (s *Store) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session %d: %w", userID, err)
	}
	return nil
}

// Close closes the underlying client
func (s *Store) Close() error {
	return s.client.Close()
}
