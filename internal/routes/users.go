package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/handlers"
	"github.com/pushp314/learnhub-backend/internal/middleware"
	"gorm.io/gorm"
)

func RegisterUserRoutes(r gin.IRouter, h *handlers.UserHandler, db *gorm.DB) {
	me := r.Group("/users/me")
	me.Use(middleware.AuthMiddleware(db))
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
		me.GET("/courses", h.GetMyCourses)
		me.POST("/avatar", h.UploadAvatar)
	}
}
