package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/pkg/errors"
	"github.com/pushp314/learnhub-backend/pkg/logger"
)

// ErrorHandlerMiddleware renders AppErrors attached to the context with their
// kind and status, and recovers panics into a generic 500.
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(debug.Stack())).
					Msg("Panic recovered")

				c.JSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{"kind": errors.KindInternal, "message": "An unexpected error occurred"},
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if appErr, ok := err.(*errors.AppError); ok {
				c.JSON(appErr.Code, gin.H{"error": appErr})
				return
			}

			logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled request error")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"kind": errors.KindInternal, "message": "Internal server error"},
			})
		}
	}
}
