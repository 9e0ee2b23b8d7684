package api

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hypoplan/domain/core"
	apperrors "hypoplan/internal/errors"
	"hypoplan/internal/metrics"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// RequestID keeps a valid caller-supplied ID or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := core.ParseRequestID(c.GetHeader(RequestIDHeader))
		if err != nil {
			id = core.NewRequestID()
		}
		c.Set(requestIDKey, id.String())
		c.Header(RequestIDHeader, id.String())
		c.Next()
	}
}

// Metrics records request counts and latency per route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, c.FullPath(), strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func recoveryHandler(c *gin.Context, recovered any) {
	log.Printf("[Recovery] %s %s panicked (request %s): %v", c.Request.Method, c.Request.URL.Path, c.GetString(requestIDKey), recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   apperrors.CodeInternalError,
		"message": "internal server error",
	})
}
