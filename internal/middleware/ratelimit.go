package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harshastride/interview-coach/internal/logger"
	"github.com/harshastride/interview-coach/internal/ratelimit"
)

// RateLimit bounds abuse on the auth and upload boundaries. With no limiter
// configured (no Redis) it is a no-op; limits are a boundary policy, not core
// logic.
func RateLimit(log *logger.Logger, limiter *ratelimit.FixedWindowLimiter, scope string) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	limitLog := log.With("middleware", "RateLimit", "scope", scope)
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		if !limiter.Allow(key) {
			limitLog.Warn("Rate limit exceeded", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
