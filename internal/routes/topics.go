package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/handlers"
	"github.com/pushp314/learnhub-backend/internal/middleware"
	"gorm.io/gorm"
)

func RegisterTopicRoutes(r gin.IRouter, h *handlers.TopicHandler, db *gorm.DB) {
	topics := r.Group("/topics")
	{
		topics.GET("", h.List)
		topics.POST("", middleware.AuthMiddleware(db), h.Create)
	}
}
