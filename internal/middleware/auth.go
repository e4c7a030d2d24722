package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/models"
	"github.com/pushp314/learnhub-backend/pkg/utils"
	"gorm.io/gorm"
)

// AuthMiddleware validates the Bearer token and loads the user's identity
// into the request context.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"kind": "unauthorized", "message": "Authorization header required"}})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"kind": "unauthorized", "message": "Invalid authorization header format"}})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"kind": "unauthorized", "message": "Invalid or expired token"}})
			c.Abort()
			return
		}

		// Verify the user still exists.
		var user models.User
		if err := db.Select("id", "role").First(&user, "id = ?", claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{"kind": "unauthorized", "message": "User not found"}})
			c.Abort()
			return
		}

		c.Set("userId", user.ID)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

// AdminMiddleware requires an authenticated admin. Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != string(models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": gin.H{"kind": "forbidden", "message": "Admin access required"}})
			c.Abort()
			return
		}
		c.Next()
	}
}
