package api

import (
	"github.com/gin-gonic/gin"
)

// respond writes the standard success envelope. Extra keys are merged at
// the top level alongside "success".
func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError writes the standard failure envelope.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}
