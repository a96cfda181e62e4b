package middleware

import (
	"fmt"
	"net/http"
	"time"

	"task_tracker/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's X-Request-ID or generates one, echoes it in
// the response and attaches a request-scoped logger to the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		l := logger.With("request_id", id)
		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), l))
		c.Next()
	}
}

// AccessLog writes one line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		l := logger.WithContext(c.Request.Context())
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		switch {
		case status >= http.StatusInternalServerError:
			l.Error("request", args...)
		case status >= http.StatusBadRequest:
			l.Warn("request", args...)
		default:
			l.Info("request", args...)
		}
	}
}

var serverErrorBody = gin.H{
	"error":   "Server error",
	"message": "Something went wrong!",
}

// Recovery turns panics into a generic 500 without exposing the cause.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.WithContext(c.Request.Context()).Error("panic recovered",
					"error", fmt.Sprint(rec), "path", c.Request.URL.Path)
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, serverErrorBody)
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// ErrorHandler answers requests that finished with errors attached via
// c.Error but no response written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		logger.WithContext(c.Request.Context()).Error("unhandled request error", "error", c.Errors.String())
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, serverErrorBody)
		}
	}
}
