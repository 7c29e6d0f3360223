package middleware

import (
	"github.com/gin-gonic/gin"

	"tradebook/internal/core/id"
	"tradebook/pkg/logger"
)

// RequestIDHeader is the header carrying the client-supplied request id.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an identifier, honoring one supplied by
// the client, and threads it through the context for log enrichment.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = id.New().String()
		}

		c.Set("request_id", reqID)
		c.Header(RequestIDHeader, reqID)

		ctx := logger.WithRequestID(c.Request.Context(), reqID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
