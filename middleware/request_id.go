package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID is the header carrying the request id, inbound and outbound.
const HeaderRequestID = "X-Request-ID"

// ContextRequestIDKey stores the request id inside the Gin context.
const ContextRequestIDKey = "request_id"

// RequestID assigns every request a uuid (or keeps the caller-supplied one)
// and echoes it in the response header so log lines can be correlated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}
