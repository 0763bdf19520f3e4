package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type windowCounter struct {
	start time.Time
	count int
}

var (
	rlMu   sync.Mutex
	rlByIP = make(map[string]*windowCounter)
)

// RateLimit selects the Redis-backed limiter when a client is
// configured and the in-memory fallback otherwise. Call after
// InitRedisRateLimiter.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	if redisClient == nil {
		return SimpleRateLimit(maxRequests, window)
	}
	return RedisRateLimit(maxRequests, window)
}

// SimpleRateLimit is the in-memory fallback limiter: a fixed window per
// client IP. Used when Redis is not configured.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rlMu.Lock()
		wc, ok := rlByIP[ip]
		if !ok || now.Sub(wc.start) > window {
			rlByIP[ip] = &windowCounter{start: now, count: 1}
			rlMu.Unlock()
			c.Next()
			return
		}
		wc.count++
		blocked := wc.count > maxRequests
		rlMu.Unlock()

		if blocked {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
