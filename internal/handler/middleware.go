package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"trademind/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

const (
	WebhookTokenHeader = "X-Webhook-Token"

	defaultMaxBodyBytes int64 = 10 << 20
)

// WebhookAuth checks the shared secret from the X-Webhook-Token header or,
// for senders that cannot set headers, the token query parameter. An empty
// secret disables the check.
func WebhookAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		provided := strings.TrimSpace(c.GetHeader(WebhookTokenHeader))
		if provided == "" {
			provided = strings.TrimSpace(c.Query("token"))
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook token"})
			return
		}
		c.Next()
	}
}

// APIAuth guards the /api routes. The token comes from
// "Authorization: Bearer <token>" or the X-Webhook-Token header; the query
// parameter is not accepted here. An empty token disables the check.
func APIAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		provided, found := strings.CutPrefix(strings.TrimSpace(c.GetHeader("Authorization")), "Bearer ")
		if !found {
			provided = c.GetHeader(WebhookTokenHeader)
		}
		provided = strings.TrimSpace(provided)
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing api token"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api token"})
			return
		}
		c.Next()
	}
}

// RateLimit allows perMin requests a minute per client IP.
func RateLimit(perMin int) gin.HandlerFunc {
	limiter := ratelimit.NewKeyed(perMin)
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func BodyLimit(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
