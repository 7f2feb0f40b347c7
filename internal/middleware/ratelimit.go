package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// DeviceRateLimit gives each device its own token bucket refilled at
// perMinute requests per minute.
func DeviceRateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	var (
		mu       sync.Mutex
		limiters = map[string]*rate.Limiter{}
	)
	every := rate.Every(time.Minute / time.Duration(perMinute))
	burst := perMinute / 4
	if burst < 1 {
		burst = 1
	}
	return func(c *gin.Context) {
		key := c.GetString(DeviceIDKey)
		if key == "" {
			key = c.ClientIP()
		}
		mu.Lock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(every, burst)
			limiters[key] = l
		}
		mu.Unlock()

		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}
		c.Next()
	}
}
