package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/handlers"
	"github.com/pushp314/learnhub-backend/internal/middleware"
	"gorm.io/gorm"
)

func RegisterCourseRoutes(r gin.IRouter, h *handlers.CourseHandler, db *gorm.DB) {
	courses := r.Group("/courses")
	{
		// Public catalog
		courses.GET("", h.List)
		courses.GET("/:id", h.GetByID)

		// Import burns YouTube quota, so it gets its own tight limiter
		courses.POST("/search",
			middleware.RateLimit(middleware.SearchLimiter),
			middleware.AuthMiddleware(db),
			h.Search)

		// Engagement
		courses.POST("/:id/assess", middleware.AuthMiddleware(db), h.Assess)
		courses.PATCH("/:id/progress", middleware.AuthMiddleware(db), h.UpdateProgress)
	}
}
