package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// Store is a key-value store with per-entry expiry. Implementations are safe
// for concurrent use. Any error other than ErrCacheMiss means the backend is
// unhealthy; callers are expected to treat that the same as a miss and carry
// on with fresh computation.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}
