package handlers

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/trendlens/backend/internal/auth"
	"github.com/trendlens/backend/internal/trends"
)

// Version is the API version reported by the root route.
const Version = "1.0.0"

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	trends      *trends.Service
	auth        *auth.Service
	faker       *gofakeit.Faker
	environment string
	startTime   time.Time
}

// NewHandlers creates a new handlers instance
func NewHandlers(trendsService *trends.Service, authService *auth.Service, environment string) *Handlers {
	return &Handlers{
		trends:      trendsService,
		auth:        authService,
		faker:       gofakeit.New(0),
		environment: environment,
		startTime:   time.Now(),
	}
}
