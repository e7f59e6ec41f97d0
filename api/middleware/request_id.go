package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/customeros/bookgraph/internal/utils"
)

// RequestIdMiddleware keeps the caller's X-Request-Id or assigns a new one,
// and echoes it on the response.
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(utils.HeaderRequestId)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Set(utils.GinKeyRequestId, requestId)
		c.Header(utils.HeaderRequestId, requestId)
		c.Next()
	}
}
