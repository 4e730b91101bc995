// Package httpkit provides HTTP middleware infrastructure.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"placelookup_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the response header carrying the generated request ID.
const RequestIDHeader = "X-Request-ID"

// unknownClientKey is the shared throttling bucket for requests whose origin
// cannot be determined.
const unknownClientKey = "unknown"

// RequestID assigns a request ID to every request and exposes it on the
// response and in the request context for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// RequestLogger logs HTTP requests with timing.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		log.WithContext(c.Request.Context()).
			HTTPRequest(c.Request.Method, path, status, float64(latency.Milliseconds()), ClientKey(c))
	}
}

// SecurityHeaders adds security headers to responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// ClientKey derives the throttling identity of a request: the first entry of
// the X-Forwarded-For header, falling back to the transport-level remote
// address, falling back to a shared "unknown" bucket.
func ClientKey(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		first := strings.TrimSpace(strings.SplitN(forwarded, ",", 2)[0])
		if first != "" {
			return first
		}
	}

	remote := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil && host != "" {
		return host
	}
	if remote != "" {
		return remote
	}

	return unknownClientKey
}

// Admitter decides whether a request from the given client key is admitted.
// Implemented by the ratelimit backends.
type Admitter interface {
	Allow(ctx context.Context, clientKey string) bool
}

// RateLimit returns a middleware that throttles requests per client key.
// Every admission check counts as a request, including rejected ones.
func RateLimit(limiter Admitter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientKey(c)

		if !limiter.Allow(c.Request.Context(), key) {
			if log != nil {
				log.RateLimitExceeded(key, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "rate limit exceeded, please try again later",
			})
			return
		}

		c.Next()
	}
}
