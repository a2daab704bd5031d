package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/logger"
)

// GinLoggerMiddleware logs HTTP requests with structured fields, replacing
// gin.Logger.
func GinLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		clientIP := c.ClientIP()

		c.Next()

		statusCode := c.Writer.Status()
		latency := time.Since(startTime)

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("client_ip", clientIP),
			zap.Int("status", statusCode),
			zap.Int("response_size", c.Writer.Size()),
			zap.Duration("latency", latency),
		}
		if requestID, ok := c.Get("request_id"); ok {
			if rid, ok := requestID.(string); ok && rid != "" {
				fields = append(fields, logger.WithRequestID(rid))
			}
		}

		switch {
		case statusCode >= 500:
			logger.Log.Error("HTTP request", fields...)
		case statusCode >= 400:
			logger.Log.Warn("HTTP request", fields...)
		default:
			logger.Log.Info("HTTP request", fields...)
		}
	}
}
