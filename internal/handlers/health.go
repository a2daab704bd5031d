package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/backend/internal/apierr"
	"github.com/trendlens/backend/internal/util"
)

// Health serves GET /health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(h.startTime).Seconds(),
		"environment": h.environment,
	})
}

// Welcome serves GET /.
func (h *Handlers) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Welcome to the TrendLens API",
		"version":   Version,
		"status":    "Running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound is the catch-all for unmatched routes.
func (h *Handlers) NotFound(c *gin.Context) {
	apiErr := apierr.RouteNotFound(c.Request.URL.Path)
	body := gin.H{
		"success": false,
		"error":   apiErr.Message,
		"path":    c.Request.URL.Path,
	}
	if util.IncludeErrorDetail {
		body["message"] = apiErr.Detail
	}
	c.JSON(apiErr.Status, body)
}
