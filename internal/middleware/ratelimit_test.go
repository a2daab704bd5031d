package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/trendlens/backend/internal/logger"
)

func init() {
	logger.InitializeForTests()
}

func TestFixedWindowBudget(t *testing.T) {
	limiter := NewFixedWindowLimiter(RateLimitConfig{
		RouteClass: "trends",
		Budget:     50,
		Window:     15 * time.Minute,
	})

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Admit("1.2.3.4")
		assert.True(t, allowed, "call %d should be allowed", i+1)
	}

	allowed, retryAfter := limiter.Admit("1.2.3.4")
	assert.False(t, allowed, "call 51 should be rejected")
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestFixedWindowLazyReset(t *testing.T) {
	limiter := NewFixedWindowLimiter(RateLimitConfig{
		RouteClass: "api",
		Budget:     2,
		Window:     15 * time.Minute,
	})

	now := time.Now()
	limiter.SetClock(func() time.Time { return now })

	allowed, _ := limiter.Admit("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Admit("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Admit("10.0.0.1")
	assert.False(t, allowed)

	// Advance past the window; the counter resets lazily on the next admit
	now = now.Add(15*time.Minute + time.Second)
	allowed, _ = limiter.Admit("10.0.0.1")
	assert.True(t, allowed)
}

func TestFixedWindowEvictsExpiredClients(t *testing.T) {
	limiter := NewFixedWindowLimiter(RateLimitConfig{
		RouteClass: "api",
		Budget:     100,
		Window:     15 * time.Minute,
	})

	now := time.Now()
	limiter.SetClock(func() time.Time { return now })

	for i := 0; i < 10000; i++ {
		limiter.Admit(fmt.Sprintf("198.51.%d.%d", i/256, i%256))
	}
	limiter.mu.Lock()
	assert.Len(t, limiter.windows, 10000)
	limiter.mu.Unlock()

	// Once every window has rolled over, the next admit sweeps the stale
	// entries instead of letting the map grow with every IP ever seen
	now = now.Add(16 * time.Minute)
	allowed, _ := limiter.Admit("203.0.113.9")
	assert.True(t, allowed)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Len(t, limiter.windows, 1)
}

func TestFixedWindowIsolatesClients(t *testing.T) {
	limiter := NewFixedWindowLimiter(RateLimitConfig{
		RouteClass: "api",
		Budget:     1,
		Window:     time.Minute,
	})

	allowed, _ := limiter.Admit("client-a")
	assert.True(t, allowed)
	allowed, _ = limiter.Admit("client-a")
	assert.False(t, allowed, "client A should be over budget")

	allowed, _ = limiter.Admit("client-b")
	assert.True(t, allowed, "client B should not be affected")
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewFixedWindowLimiter(RateLimitConfig{
		RouteClass: "trends",
		Budget:     3,
		Window:     time.Minute,
	})

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should succeed", i+1)
	}

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"success":false`)
}
