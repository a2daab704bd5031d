package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/apierr"
	"github.com/trendlens/backend/internal/logger"
	"github.com/trendlens/backend/internal/metrics"
	"github.com/trendlens/backend/internal/util"
)

// RateLimitConfig holds configuration for one route class.
type RateLimitConfig struct {
	// RouteClass labels the limiter in logs and metrics
	RouteClass string
	// Budget is the number of requests allowed per window
	Budget int
	// Window is the fixed counting window
	Window time.Duration
}

// APIRateLimitConfig is the default budget for general API routes.
func APIRateLimitConfig(budget int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{RouteClass: "api", Budget: budget, Window: window}
}

// TrendsRateLimitConfig is the tighter budget for trend-specific routes.
func TrendsRateLimitConfig(budget int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{RouteClass: "trends", Budget: budget, Window: window}
}

// rateWindow tracks one client's count inside the current fixed window.
type rateWindow struct {
	start time.Time
	count int
}

// FixedWindowLimiter counts requests per client in fixed windows. Window
// reset is lazy: elapsed time is checked at admit time, there is no timer.
// Construct one per route class and share it across handlers.
type FixedWindowLimiter struct {
	config    RateLimitConfig
	now       func() time.Time
	mu        sync.Mutex
	windows   map[string]*rateWindow
	lastSweep time.Time
}

// NewFixedWindowLimiter creates an in-memory limiter for one route class.
func NewFixedWindowLimiter(config RateLimitConfig) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		config:  config,
		now:     time.Now,
		windows: make(map[string]*rateWindow),
	}
}

// SetClock overrides the limiter's clock. Test hook.
func (l *FixedWindowLimiter) SetClock(now func() time.Time) {
	l.now = now
}

// Admit decides whether a client request fits the current window. When
// rejected, retryAfter says how long until the window rolls over.
func (l *FixedWindowLimiter) Admit(clientID string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.maybeSweep(now)

	w, ok := l.windows[clientID]
	if !ok || now.Sub(w.start) >= l.config.Window {
		l.windows[clientID] = &rateWindow{start: now, count: 1}
		return true, 0
	}

	if w.count >= l.config.Budget {
		return false, l.config.Window - now.Sub(w.start)
	}

	w.count++
	return true, 0
}

// maybeSweep evicts expired client windows so the map doesn't grow with every
// IP that ever hit the API. Runs a full scan at most once per window.
// Caller holds mu.
func (l *FixedWindowLimiter) maybeSweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.config.Window {
		return
	}
	l.lastSweep = now
	for id, w := range l.windows {
		if now.Sub(w.start) >= l.config.Window {
			delete(l.windows, id)
		}
	}
}

// Middleware wraps the limiter for gin, keying clients by IP.
func (l *FixedWindowLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		allowed, retryAfter := l.Admit(clientIP)
		if !allowed {
			metrics.RecordRateLimitExceeded(l.config.RouteClass)
			logger.Log.Warn("rate limit exceeded",
				logger.WithIP(clientIP),
				zap.String("route_class", l.config.RouteClass),
				zap.Int("budget", l.config.Budget),
			)
			seconds := int(math.Ceil(retryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.Header("X-RateLimit-Limit", strconv.Itoa(l.config.Budget))
			c.Header("X-RateLimit-Remaining", "0")
			util.RespondWithAPIError(c, apierr.RateLimited())
			c.Abort()
			return
		}
		c.Next()
	}
}
