package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docukit/docgraph-backend/internal/logger"
)

type RequestLogger struct {
	log *logger.Logger
}

func NewRequestLogger(log *logger.Logger) *RequestLogger {
	return &RequestLogger{log: log.With("middleware", "RequestLogger")}
}

// Handle tags each request with an id and logs it once the response is
// written.
func (rl *RequestLogger) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		rl.log.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
			"request_id", requestID,
			"remote_addr", c.ClientIP(),
		)
	}
}
