package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   prometheus.CounterVec
	HTTPRequestDuration prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal         prometheus.CounterVec
	CacheMissesTotal       prometheus.CounterVec
	CacheOperationDuration prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitExceededTotal prometheus.CounterVec
}

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request latency in seconds",
					Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			CacheHitsTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_hits_total",
					Help: "Total number of cache hits",
				},
				[]string{"cache"},
			),
			CacheMissesTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "cache_misses_total",
					Help: "Total number of cache misses",
				},
				[]string{"cache"},
			),
			CacheOperationDuration: *promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "cache_operation_duration_seconds",
					Help:    "Cache operation latency in seconds",
					Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
				},
				[]string{"operation", "cache"},
			),
			RateLimitExceededTotal: *promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "rate_limit_exceeded_total",
					Help: "Total number of requests rejected by the rate limiter",
				},
				[]string{"route_class"},
			),
		}
	})
	return instance
}

// Get returns the metrics instance, initializing on first use
func Get() *Metrics {
	if instance == nil {
		return Initialize()
	}
	return instance
}

// RecordCacheHit increments the hit counter for a named cache
func RecordCacheHit(cacheName string) {
	Get().CacheHitsTotal.WithLabelValues(cacheName).Inc()
}

// RecordCacheMiss increments the miss counter for a named cache
func RecordCacheMiss(cacheName string) {
	Get().CacheMissesTotal.WithLabelValues(cacheName).Inc()
}

// RecordCacheOperation observes the latency of a cache operation
func RecordCacheOperation(operation, cacheName string, duration time.Duration) {
	Get().CacheOperationDuration.WithLabelValues(operation, cacheName).Observe(duration.Seconds())
}

// RecordRateLimitExceeded increments the rejection counter for a route class
func RecordRateLimitExceeded(routeClass string) {
	Get().RateLimitExceededTotal.WithLabelValues(routeClass).Inc()
}
