package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gamey/internal/domain/session"
	errs "gamey/internal/errors"
)

type RedisSessionStorage struct {
	client *redis.Client
	log    *zap.SugaredLogger
}

func NewRedisSessionStorage(client *redis.Client, log *zap.SugaredLogger) *RedisSessionStorage {
	return &RedisSessionStorage{client: client, log: log}
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *RedisSessionStorage) Create(ctx context.Context, s session.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ok, err := r.client.SetNX(ctx, sessionKey(s.ID), data, ttl).Result()
	if err != nil {
		r.log.Errorf("failed to store session %s: %v", s.ID, err)
		return errs.ErrInternal
	}
	if !ok {
		return fmt.Errorf("%w: session %s already exists", errs.ErrInternal, s.ID)
	}
	return nil
}

func (r *RedisSessionStorage) Get(ctx context.Context, id string) (session.Session, error) {
	return r.read(ctx, r.client, id)
}

// Update runs fn inside a WATCH transaction on the session key. A write by
// anyone else between the read and EXEC aborts it with ErrSessionConflict.
func (r *RedisSessionStorage) Update(ctx context.Context, id string, ttl time.Duration, fn func(s *session.Session) error) (session.Session, error) {
	key := sessionKey(id)
	var updated session.Session

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		s, err := r.read(ctx, tx, id)
		if err != nil {
			return err
		}
		if err = fn(&s); err != nil {
			return err
		}
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = s
		return nil
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return session.Session{}, fmt.Errorf("%w: %s", errs.ErrSessionConflict, id)
	}
	if err != nil {
		return session.Session{}, err
	}
	return updated, nil
}

func (r *RedisSessionStorage) read(ctx context.Context, c getter, id string) (session.Session, error) {
	raw, err := c.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Session{}, fmt.Errorf("%w: %s", errs.ErrSessionNotFound, id)
	}
	if err != nil {
		r.log.Errorf("failed to load session %s: %v", id, err)
		return session.Session{}, errs.ErrInternal
	}

	var s session.Session
	if err = json.Unmarshal(raw, &s); err != nil {
		r.log.Errorf("corrupt session %s: %v", id, err)
		return session.Session{}, errs.ErrInternal
	}
	return s, nil
}
