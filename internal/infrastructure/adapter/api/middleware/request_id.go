package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key holding the request identifier
const RequestIDKey = "request_id"

// RequestIDHeader is the header the identifier is read from and echoed to
const RequestIDHeader = "X-Request-ID"

// RequestID attaches an identifier to every request, honoring one supplied
// by the caller so provider-side retries can be correlated in logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}
