package middleware

import (
	"mutual-aid/internal/services"
	"mutual-aid/internal/transport/httpdto"
	"mutual-aid/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler writes the envelope for errors a handler attached with
// c.Error without responding itself.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.WithContext(c.Request.Context()).Error("request error", zap.Error(err))
		}
		c.JSON(services.HTTPStatus(err), httpdto.NewErrorResponse(err.Error(), services.ErrorCode(err)))
	}
}
