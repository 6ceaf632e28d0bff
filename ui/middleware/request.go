package middleware

import (
	"time"

	"statcalc/domain/core"
	"statcalc/internal"

	"github.com/gin-gonic/gin"
)

const (
	// RequestIDHeader carries the request ID in and out
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID assigns every request an ID, reusing a valid incoming header
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := core.ParseID(c.GetHeader(RequestIDHeader))
		if err != nil {
			id = core.NewID()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id.String())
		c.Next()
	}
}

// GetRequestID returns the ID assigned by RequestID, or a fresh one
func GetRequestID(c *gin.Context) core.ID {
	if v, ok := c.Get(requestIDKey); ok {
		if id, ok := v.(core.ID); ok {
			return id
		}
	}
	return core.NewID()
}

// RequestLogger logs one line per request at info level, errors at warn
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	logger = logger.WithComponent("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		id := GetRequestID(c)
		if status >= 400 {
			logger.Warn("%s %s %d %v id=%s", c.Request.Method, c.Request.URL.Path, status, time.Since(start), id)
			return
		}
		logger.Info("%s %s %d %v id=%s", c.Request.Method, c.Request.URL.Path, status, time.Since(start), id)
	}
}
