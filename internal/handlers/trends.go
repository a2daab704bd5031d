package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/backend/internal/apierr"
	"github.com/trendlens/backend/internal/trends"
	"github.com/trendlens/backend/internal/util"
)

// GetRealTimeTrends serves GET /api/trends/realtime.
// Query parameters: platform (default all), location (default worldwide),
// limit (default 20, capped at 100, strict integer).
func (h *Handlers) GetRealTimeTrends(c *gin.Context) {
	limit, err := util.ParseCount(c.Query("limit"), trends.DefaultLimit)
	if err != nil {
		util.RespondWithAPIError(c, apierr.Validation("limit "+err.Error()))
		return
	}

	result, err := h.trends.QueryTrends(
		c.Request.Context(),
		c.Query("platform"),
		c.Query("location"),
		limit,
	)
	if err != nil {
		util.RespondWithAPIError(c, apierr.Internal("Failed to fetch trending topics", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      result.Records,
		"cached":    result.Cached,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type analyzeRequest struct {
	Keywords  []string `json:"keywords"`
	Timeframe string   `json:"timeframe"`
}

// AnalyzeKeywords serves POST /api/trends/analyze. Missing, empty, or
// non-array keywords are a 400.
func (h *Handlers) AnalyzeKeywords(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithAPIError(c, apierr.Validation("Keywords array is required"))
		return
	}

	analysis, err := h.trends.AnalyzeKeywords(c.Request.Context(), req.Keywords, req.Timeframe)
	if err != nil {
		if err == trends.ErrNoKeywords {
			util.RespondWithAPIError(c, apierr.Validation("Keywords array is required"))
			return
		}
		util.RespondWithAPIError(c, apierr.Internal("Failed to analyze keywords", err))
		return
	}

	util.RespondData(c, analysis)
}

// GetPredictions serves GET /api/trends/predictions.
func (h *Handlers) GetPredictions(c *gin.Context) {
	predictions, confidence := h.trends.Predictions(
		c.Request.Context(),
		c.DefaultQuery("category", "all"),
		c.DefaultQuery("timeRange", "7d"),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       predictions,
		"confidence": confidence,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}

// GetHistorical serves GET /api/trends/historical/:keyword.
func (h *Handlers) GetHistorical(c *gin.Context) {
	days, err := util.ParseCount(c.Query("days"), 30)
	if err != nil {
		util.RespondWithAPIError(c, apierr.Validation("days "+err.Error()))
		return
	}
	if days > 365 {
		days = 365
	}

	series, err := h.trends.Historical(c.Request.Context(), c.Param("keyword"), days)
	if err != nil {
		util.RespondWithAPIError(c, apierr.Internal("Failed to fetch historical data", err))
		return
	}

	util.RespondData(c, series)
}
