package port

import (
	"context"
	"time"
)

// KeyValueStore backs the virtual impression recorder. Implementations
// must support concurrent readers and writers and evict entries on
// their own once the TTL elapses; the core never runs a reaper.
type KeyValueStore interface {
	// SetWithTTL stores value under key, overwriting any previous value
	// and resetting the expiry.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the value for key, or ErrNotFound when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
}
