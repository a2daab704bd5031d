package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trendlens/backend/internal/apierr"
	"github.com/trendlens/backend/internal/util"
)

type generateContentRequest struct {
	Prompt   string `json:"prompt"`
	Platform string `json:"platform"`
}

// GenerateContent serves POST /api/content/generate. The generation itself is
// mocked; the endpoint exists so the dashboard has something to render.
func (h *Handlers) GenerateContent(c *gin.Context) {
	var req generateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		util.RespondWithAPIError(c, apierr.Validation("Prompt is required"))
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = "general"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"content":          fmt.Sprintf("Generated content about: %s. Perfect for %s! #trending", req.Prompt, platform),
			"platform":         platform,
			"engagement_score": h.faker.IntRange(50, 150),
			"generated_at":     time.Now().UTC().Format(time.RFC3339),
		},
	})
}
