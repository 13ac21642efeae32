package api

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestTracking tags every request with an id, echoes it in X-Request-ID
// and logs the outcome.
func RequestTracking(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set(requestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("request_id", requestID),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			slog.Int("status_code", status),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed with server error", attrs...)
		case status >= http.StatusBadRequest:
			logger.Warn("request failed with client error", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}
	}
}

// Recover turns a handler panic into a 500 and logs the stack.
func Recover(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic in handler",
					slog.Any("panic", rec),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
