// Package backend provides the TrendLens API server.

// This package contains the main application entry point. The actual API
// documentation is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/trends: Trend query and keyword analysis engine
// - internal/auth: Authentication and authorization services
// - internal/cache: Cache store implementations (Redis, in-memory)
// - internal/models: Data models and database schemas
// - internal/database: Database connection and migrations
// - internal/middleware: HTTP middleware (rate limiting, request logging)
// - internal/metrics: Prometheus metric definitions
// - internal/seed: Development database seeding

// See the individual package documentation for detailed API reference.
package backend
