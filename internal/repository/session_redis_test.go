package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamey/internal/domain/session"
	errs "gamey/internal/errors"
)

func newRedisStorage(t *testing.T) (*RedisSessionStorage, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionStorage(client, zap.NewNop().Sugar()), mr, client
}

func TestRedisSessionCreateGet(t *testing.T) {
	storage, mr, _ := newRedisStorage(t)
	ctx := context.Background()

	s := session.Session{ID: "abc", Mode: session.ModeLocal, Status: "ongoing"}
	require.NoError(t, storage.Create(ctx, s, time.Minute))
	assert.Error(t, storage.Create(ctx, s, time.Minute))

	got, err := storage.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, s.Mode, got.Mode)
	assert.Equal(t, time.Minute, mr.TTL("session:abc"))

	_, err = storage.Get(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)

	mr.FastForward(2 * time.Minute)
	_, err = storage.Get(ctx, "abc")
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}

func TestRedisSessionUpdate(t *testing.T) {
	storage, _, _ := newRedisStorage(t)
	ctx := context.Background()
	require.NoError(t, storage.Create(ctx, session.Session{ID: "abc", Status: "ongoing"}, time.Minute))

	updated, err := storage.Update(ctx, "abc", time.Minute, func(s *session.Session) error {
		s.Status = "finished"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "finished", updated.Status)

	got, err := storage.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "finished", got.Status)

	_, err = storage.Update(ctx, "abc", time.Minute, func(s *session.Session) error {
		s.Status = "ongoing"
		return errs.ErrCellOccupied
	})
	assert.ErrorIs(t, err, errs.ErrCellOccupied)
	got, err = storage.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "finished", got.Status)

	_, err = storage.Update(ctx, "missing", time.Minute, func(*session.Session) error { return nil })
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}

func TestRedisSessionUpdateConflict(t *testing.T) {
	storage, _, client := newRedisStorage(t)
	ctx := context.Background()
	require.NoError(t, storage.Create(ctx, session.Session{ID: "abc", Status: "ongoing"}, time.Minute))

	_, err := storage.Update(ctx, "abc", time.Minute, func(s *session.Session) error {
		// another writer gets in between the read and the commit
		require.NoError(t, client.Set(ctx, sessionKey("abc"), `{"id":"abc","status":"finished"}`, time.Minute).Err())
		s.Status = "ongoing"
		return nil
	})
	assert.ErrorIs(t, err, errs.ErrSessionConflict)

	got, err := storage.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "finished", got.Status)
}
