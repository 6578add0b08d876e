package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmaker/pkg/utils"
)

// MaxBodySize caps request bodies. Oversized payloads fail during binding.
func MaxBodySize(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			utils.RespondError(c, http.StatusRequestEntityTooLarge, "Request body too large")
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
