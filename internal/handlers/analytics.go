package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/services"
	"github.com/pushp314/learnhub-backend/pkg/utils"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Dashboard handles GET /analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.analytics.UserDashboard(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusOK, dashboard)
}

// Platform handles GET /analytics/platform
func (h *AnalyticsHandler) Platform(c *gin.Context) {
	stats, err := h.analytics.PlatformStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusOK, stats)
}
