package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/logger"
	"github.com/trendlens/backend/internal/metrics"
)

// RedisStore wraps a redis.Client behind the Store interface, with connection
// pooling configured for a small API tier. It also exposes the counter
// operations the distributed rate limiter needs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis using a redis:// URL and verifies the
// connection before returning.
func NewRedisStore(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	opts.MaxRetries = 3
	opts.PoolSize = 10
	opts.MinIdleConns = 5
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Log.Info("Redis connected",
		zap.String("address", opts.Addr),
	)

	return &RedisStore{client: client}, nil
}

// Get retrieves a value, mapping redis.Nil to ErrCacheMiss.
func (rs *RedisStore) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	val, err := rs.client.Get(ctx, key).Result()
	metrics.RecordCacheOperation("get", "redis", time.Since(start))
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

// SetEx stores a value with an expiration.
func (rs *RedisStore) SetEx(ctx context.Context, key string, value string, ttl time.Duration) error {
	start := time.Now()
	err := rs.client.Set(ctx, key, value, ttl).Err()
	metrics.RecordCacheOperation("setex", "redis", time.Since(start))
	return err
}

// Del deletes one or more keys.
func (rs *RedisStore) Del(ctx context.Context, keys ...string) error {
	return rs.client.Del(ctx, keys...).Err()
}

// IncrBy increments a counter key, creating it at zero if absent.
func (rs *RedisStore) IncrBy(ctx context.Context, key string, increment int64) (int64, error) {
	return rs.client.IncrBy(ctx, key, increment).Result()
}

// Expire sets an expiration timeout on a key.
func (rs *RedisStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return rs.client.Expire(ctx, key, ttl).Err()
}

// Ping tests the connection.
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

// Close closes the connection pool.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
