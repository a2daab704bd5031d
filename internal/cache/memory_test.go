package cache

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendlens/backend/internal/metrics"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.SetEx(ctx, "trends:v1:all:worldwide:20", `[{"name":"AI"}]`, 5*time.Minute))

	val, err := store.Get(ctx, "trends:v1:all:worldwide:20")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"AI"}]`, val)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.SetEx(ctx, "short", "v", 500*time.Millisecond))

	// Sub-second TTLs round up to one second
	time.Sleep(1100 * time.Millisecond)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStoreRecordsOperationLatency(t *testing.T) {
	m := metrics.Get()
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.SetEx(ctx, "observed", "v", time.Minute))
	_, err := store.Get(ctx, "observed")
	require.NoError(t, err)

	// One series per (operation, cache) pair: get/memory and setex/memory
	assert.GreaterOrEqual(t, testutil.CollectAndCount(m.CacheOperationDuration), 2)
}

func TestMemoryStoreDel(t *testing.T) {
	store := NewMemoryStore(0)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.SetEx(ctx, "k", "v", time.Minute))
	require.NoError(t, store.Del(ctx, "k", "missing"))

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
