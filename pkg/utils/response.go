package utils

import "github.com/gin-gonic/gin"

// Respond writes a successful response in the uniform {data: ...} envelope.
func Respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"data": data})
}
