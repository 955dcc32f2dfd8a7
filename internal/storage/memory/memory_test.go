package memory

import (
	"context"
	"sync"
	"testing"

	"leadbot/internal/models"
	"leadbot/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetMissing(t *testing.T) {
	s := New()

	_, err := s.Get(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestStore_SetGetClear(t *testing.T) {
	s := New()
	ctx := context.Background()

	err := s.Set(ctx, &models.Session{UserID: 7, State: "NAME"})
	require.NoError(t, err)

	got, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "NAME", got.State)

	require.NoError(t, s.Clear(ctx, 7))
	_, err = s.Get(ctx, 7)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// clearing twice is fine
	assert.NoError(t, s.Clear(ctx, 7))
}

func TestStore_NoAliasing(t *testing.T) {
	s := New()
	ctx := context.Background()

	session := &models.Session{UserID: 1, State: "NAME"}
	require.NoError(t, s.Set(ctx, session))

	session.State = "PHONE"
	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "NAME", got.State)

	got.Fields.Name = "changed"
	again, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, again.Fields.Name)
}

func TestStore_UsersIsolated(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, &models.Session{UserID: 1, State: "NAME"}))
	require.NoError(t, s.Set(ctx, &models.Session{UserID: 2, State: "REVIEW"}))
	require.NoError(t, s.Clear(ctx, 1))

	got, err := s.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "REVIEW", got.State)
}

func TestStore_Concurrent(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_ = s.Set(ctx, &models.Session{UserID: id, State: "NAME"})
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		_, err := s.Get(ctx, i)
		assert.NoError(t, err)
	}
}
