package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/handlers"
	"github.com/pushp314/learnhub-backend/internal/middleware"
	"gorm.io/gorm"
)

func RegisterAnalyticsRoutes(r gin.IRouter, h *handlers.AnalyticsHandler, db *gorm.DB) {
	analytics := r.Group("/analytics")
	{
		analytics.GET("/dashboard", middleware.AuthMiddleware(db), h.Dashboard)
		analytics.GET("/platform", h.Platform)
	}
}
