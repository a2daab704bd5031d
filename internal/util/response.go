package util

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/trendlens/backend/internal/apierr"
	"github.com/trendlens/backend/internal/logger"
)

// IncludeErrorDetail controls whether error responses carry the underlying
// cause. Enabled in development, off in production. Set once at startup.
var IncludeErrorDetail = true

// RespondWithAPIError sends the uniform failure envelope for an APIError and
// logs it at a level matching its severity.
func RespondWithAPIError(c *gin.Context, apiErr *apierr.APIError) {
	if apiErr.Status >= http.StatusInternalServerError {
		logger.Log.Error("API error",
			zap.String("code", string(apiErr.Code)),
			zap.String("message", apiErr.Message),
			zap.String("detail", apiErr.Detail),
			zap.Int("status", apiErr.Status),
			zap.String("path", c.Request.URL.Path),
		)
	} else if apiErr.Status >= http.StatusBadRequest {
		logger.Log.Warn("API error",
			zap.String("code", string(apiErr.Code)),
			zap.String("message", apiErr.Message),
			zap.Int("status", apiErr.Status),
			zap.String("path", c.Request.URL.Path),
		)
	}

	body := gin.H{
		"success": false,
		"error":   apiErr.Message,
		"code":    string(apiErr.Code),
	}
	if apiErr.Detail != "" && IncludeErrorDetail {
		body["message"] = apiErr.Detail
	}
	c.JSON(apiErr.Status, body)
}

// RespondData sends the success envelope without a cached flag.
func RespondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
