package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetDashboard serves GET /api/analytics/dashboard with demo engagement
// numbers shaped like the real analytics payload.
func (h *Handlers) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"total_posts":     h.faker.IntRange(100, 1100),
			"engagement_rate": fmt.Sprintf("%.2f%%", h.faker.Float64Range(5, 20)),
			"top_platforms":   []string{"instagram", "twitter", "tiktok"},
			"trending_topics": []gin.H{
				{"topic": "AI Technology", "growth": "+45%"},
				{"topic": "Sustainable Living", "growth": "+32%"},
				{"topic": "Remote Work", "growth": "+28%"},
			},
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}
