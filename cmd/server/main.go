package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/auth"
	"github.com/trendlens/backend/internal/cache"
	"github.com/trendlens/backend/internal/config"
	"github.com/trendlens/backend/internal/database"
	"github.com/trendlens/backend/internal/handlers"
	"github.com/trendlens/backend/internal/logger"
	"github.com/trendlens/backend/internal/metrics"
	"github.com/trendlens/backend/internal/middleware"
	"github.com/trendlens/backend/internal/trends"
	"github.com/trendlens/backend/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	util.IncludeErrorDetail = cfg.IsDevelopment()
	metrics.Initialize()

	db, err := database.Connect(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Cache backend: Redis when configured, in-process otherwise. Losing the
	// cache only costs the memoization, so a Redis connection failure demotes
	// to the in-process store instead of refusing to start.
	var store cache.Store
	var redisStore *cache.RedisStore
	if cfg.RedisURL != "" {
		redisStore, err = cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			logger.Log.Warn("Redis unavailable, falling back to in-process cache", zap.Error(err))
			store = cache.NewMemoryStore(0)
		} else {
			store = redisStore
		}
	} else {
		store = cache.NewMemoryStore(0)
	}
	defer store.Close()

	var source trends.DataSource
	if cfg.TwitterBearerToken != "" {
		source = trends.NewTwitterSource(cfg.TwitterBearerToken)
	} else {
		source = trends.NewMockSource(0, 25)
	}

	trendsService := trends.NewService(store, source, trends.NewMockScorer(0))
	authService := auth.NewService(db, cfg.JWTSecret)
	h := handlers.NewHandlers(trendsService, authService, cfg.Environment)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", h.Health)
	r.GET("/", h.Welcome)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.NoRoute(h.NotFound)

	apiLimit := rateLimit(redisStore, middleware.APIRateLimitConfig(cfg.RateLimitAPIBudget, cfg.RateLimitWindow))
	trendsLimit := rateLimit(redisStore, middleware.TrendsRateLimitConfig(cfg.RateLimitTrendsBudget, cfg.RateLimitWindow))

	api := r.Group("/api")
	api.Use(apiLimit)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/me", authService.Middleware(), h.Me)
	}

	trendRoutes := api.Group("/trends")
	trendRoutes.Use(trendsLimit, authService.Middleware())
	{
		trendRoutes.GET("/realtime", h.GetRealTimeTrends)
		trendRoutes.POST("/analyze", h.AnalyzeKeywords)
		trendRoutes.GET("/predictions", h.GetPredictions)
		trendRoutes.GET("/historical/:keyword", h.GetHistorical)
	}

	contentRoutes := api.Group("/content")
	contentRoutes.Use(authService.Middleware())
	{
		contentRoutes.POST("/generate", h.GenerateContent)
	}

	analyticsRoutes := api.Group("/analytics")
	analyticsRoutes.Use(authService.Middleware())
	{
		analyticsRoutes.GET("/dashboard", h.GetDashboard)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("TrendLens API listening",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exited")
}

// rateLimit picks the distributed limiter when Redis is available and the
// in-memory fixed window otherwise.
func rateLimit(redisStore *cache.RedisStore, config middleware.RateLimitConfig) gin.HandlerFunc {
	if redisStore != nil {
		return middleware.RedisRateLimitMiddleware(redisStore, config)
	}
	return middleware.NewFixedWindowLimiter(config).Middleware()
}
