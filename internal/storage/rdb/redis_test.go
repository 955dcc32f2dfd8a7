package rdb

import (
	"context"
	"testing"
	"time"

	"leadbot/internal/models"
	"leadbot/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore starts an in-process Redis server
func setupTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := New(client, ttl)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestStore_RoundTrip(t *testing.T) {
	store, mr := setupTestStore(t, 0)
	ctx := context.Background()

	session := &models.Session{
		UserID:  42,
		State:   "AWAITING_NEW_VALUE",
		Editing: "phone",
		Fields: models.Fields{
			Name:  "Анна",
			Phone: "+79990000000",
		},
	}
	session.Fields.SetFormat("5 сессий", "150 000 ₽")

	require.NoError(t, store.Set(ctx, session))
	assert.True(t, mr.Exists("booking:session:42"))
	assert.Equal(t, time.Duration(0), mr.TTL("booking:session:42"))

	got, err := store.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, session.State, got.State)
	assert.Equal(t, session.Editing, got.Editing)
	assert.Equal(t, session.Fields, got.Fields)
}

func TestStore_GetMissing(t *testing.T) {
	store, _ := setupTestStore(t, 0)

	_, err := store.Get(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestStore_Clear(t *testing.T) {
	store, mr := setupTestStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &models.Session{UserID: 5, State: "NAME"}))
	require.NoError(t, store.Clear(ctx, 5))
	assert.False(t, mr.Exists("booking:session:5"))

	_, err := store.Get(ctx, 5)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestStore_TTL(t *testing.T) {
	store, mr := setupTestStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, &models.Session{UserID: 9, State: "TIME"}))
	assert.Equal(t, time.Hour, mr.TTL("booking:session:9"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, 9)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestStore_CorruptValue(t *testing.T) {
	store, mr := setupTestStore(t, 0)

	require.NoError(t, mr.Set("booking:session:3", "not json"))
	_, err := store.Get(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Connect(ctx, Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
