// Package redis adapts a Redis client to the engine's key-value port.
// Redis-native expiry gives virtual impressions their 30-second
// lifetime without any reaper on our side.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"vista-ads/internal/core/port"
)

// Store implements port.KeyValueStore on a redis client.
type Store struct {
	rc *redis.Client
}

// NewStore wraps an already-connected client.
func NewStore(rc *redis.Client) *Store {
	return &Store{rc: rc}
}

// Connect parses addr (redis://...), connects and pings with a short
// timeout so startup fails fast on a bad address.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		return nil, err
	}
	rc := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		_ = rc.Close()
		return nil, err
	}
	return rc, nil
}

func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rc.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rc.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrNotFound
	}
	return b, err
}

var _ port.KeyValueStore = (*Store)(nil)
