package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/softhouse/customers/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Recovery recovers from panics, logs the cause and answers with the
// generic system-error envelope
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID, _ := c.Get("request_id")
				requestIDStr, _ := requestID.(string)

				logger.Error("panic recovered",
					zap.String("request_id", requestIDStr),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				)

				occ := dto.SystemErrorOccurrence()
				c.AbortWithStatusJSON(occ.Status, occ)
			}
		}()
		c.Next()
	}
}
