package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/apierr"
	"github.com/trendlens/backend/internal/logger"
	"github.com/trendlens/backend/internal/metrics"
	"github.com/trendlens/backend/internal/util"
)

// CounterStore is the slice of the Redis store the distributed limiter needs.
type CounterStore interface {
	IncrBy(ctx context.Context, key string, increment int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// RedisRateLimitMiddleware enforces a fixed-window budget with a shared Redis
// counter, so the window holds across multiple instances. The counter key
// carries the route class: distinct classes meter the same client
// independently.
//
// If Redis itself fails the request is rejected with 503: letting traffic
// through while the limiter is down would leave the API unprotected.
func RedisRateLimitMiddleware(store CounterStore, config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := fmt.Sprintf("rate_limit:%s:%s", config.RouteClass, clientIP)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// INCR before the budget check; a read-then-increment would let two
		// concurrent requests share the same count and both slip through.
		count, err := store.IncrBy(ctx, key, 1)
		if err != nil {
			logger.Log.Error("rate limit increment failed, rejecting request",
				logger.WithIP(clientIP),
				zap.Error(err),
			)
			util.RespondWithAPIError(c, &apierr.APIError{
				Code:    apierr.ErrServiceUnavail,
				Message: "Service temporarily unavailable",
				Status:  503,
			})
			c.Abort()
			return
		}

		// First hit in this window starts the clock
		if count == 1 {
			if err := store.Expire(ctx, key, config.Window); err != nil {
				logger.Log.Warn("failed to set rate limit expiration",
					logger.WithIP(clientIP),
					zap.Error(err),
				)
			}
		}

		if count > int64(config.Budget) {
			metrics.RecordRateLimitExceeded(config.RouteClass)
			logger.Log.Warn("rate limit exceeded",
				logger.WithIP(clientIP),
				zap.String("route_class", config.RouteClass),
				zap.Int("budget", config.Budget),
				zap.Int64("current", count),
			)
			c.Header("Retry-After", strconv.Itoa(int(config.Window.Seconds())))
			c.Header("X-RateLimit-Limit", strconv.Itoa(config.Budget))
			c.Header("X-RateLimit-Remaining", "0")
			util.RespondWithAPIError(c, apierr.RateLimited())
			c.Abort()
			return
		}

		c.Next()
	}
}
