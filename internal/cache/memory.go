package cache

import (
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"

	"github.com/trendlens/backend/internal/metrics"
)

// defaultMemorySize is 16 MB, far more than the trend payloads need.
const defaultMemorySize = 16 * 1024 * 1024

// MemoryStore is an in-process Store backed by freecache. It serves
// deployments without a Redis URL configured, and unit tests.
type MemoryStore struct {
	cache *freecache.Cache
}

// NewMemoryStore creates an in-process store. sizeBytes <= 0 selects the
// default capacity.
func NewMemoryStore(sizeBytes int) *MemoryStore {
	if sizeBytes <= 0 {
		sizeBytes = defaultMemorySize
	}
	return &MemoryStore{cache: freecache.NewCache(sizeBytes)}
}

// Get retrieves a value, mapping freecache's not-found to ErrCacheMiss.
func (ms *MemoryStore) Get(_ context.Context, key string) (string, error) {
	start := time.Now()
	val, err := ms.cache.Get([]byte(key))
	metrics.RecordCacheOperation("get", "memory", time.Since(start))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return "", ErrCacheMiss
		}
		return "", err
	}
	return string(val), nil
}

// SetEx stores a value with an expiration. freecache truncates TTLs to whole
// seconds; sub-second TTLs round up so short test TTLs still expire.
func (ms *MemoryStore) SetEx(_ context.Context, key string, value string, ttl time.Duration) error {
	start := time.Now()
	seconds := int(ttl / time.Second)
	if seconds == 0 && ttl > 0 {
		seconds = 1
	}
	err := ms.cache.Set([]byte(key), []byte(value), seconds)
	metrics.RecordCacheOperation("setex", "memory", time.Since(start))
	return err
}

// Del deletes keys. Missing keys are not an error.
func (ms *MemoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		ms.cache.Del([]byte(key))
	}
	return nil
}

// Ping always succeeds for the in-process store.
func (ms *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Close clears the cache.
func (ms *MemoryStore) Close() error {
	ms.cache.Clear()
	return nil
}
