package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// RequestID propagates the caller's X-Request-Id or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger logs one line per request. Client errors log at warn, server errors
// at error.
func Logger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   status,
			"duration": time.Since(start),
		}
		if fields["path"] == "" {
			fields["path"] = c.Request.URL.Path
		}
		appendField(fields, "request_id", requestID(c))
		appendField(fields, "query", c.Request.URL.RawQuery)
		appendField(fields, "client_ip", c.ClientIP())
		appendField(fields, "user_agent", c.Request.UserAgent())
		if n := c.Writer.Size(); n > 0 {
			fields["response_bytes"] = n
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.Last().Error()
		}

		entry := logger.WithFields(fields)
		switch levelFor(status) {
		case logrus.ErrorLevel:
			entry.Error("request completed")
		case logrus.WarnLevel:
			entry.Warn("request completed")
		default:
			entry.Info("request completed")
		}
	}
}

func levelFor(status int) logrus.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return logrus.ErrorLevel
	case status >= http.StatusBadRequest:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

func appendField(fields logrus.Fields, key, value string) {
	if value == "" {
		return
	}
	fields[key] = value
}
