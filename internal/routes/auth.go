package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/handlers"
	"github.com/pushp314/learnhub-backend/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter, h *handlers.AuthHandler) {
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(middleware.AuthLimiter))
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
}
