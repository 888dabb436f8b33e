package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"mutual-aid/pkg/logger"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-Id"

func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = newRequestID()
		}
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Set(string(logger.RequestIdKey), requestID)

		ctx := context.WithValue(c.Request.Context(), logger.RequestIdKey, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// newRequestID is a compact 32-char hex id.
func newRequestID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
