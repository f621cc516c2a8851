package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Requests int           `json:"requests"`
	Window   time.Duration `json:"window"`
	Enabled  bool          `json:"enabled"`
}

// RateLimitEntry tracks requests for a specific key
type RateLimitEntry struct {
	Requests []time.Time
	mutex    sync.Mutex
}

// RateLimiter implements in-memory rate limiting for the public routes
type RateLimiter struct {
	entries sync.Map // map[string]*RateLimitEntry
	configs map[string]RateLimitConfig
}

// NewRateLimiter creates a rate limiter covering the unauthenticated
// surface: form submissions and login attempts.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		configs: map[string]RateLimitConfig{
			"public_intake": {
				Requests: 20,
				Window:   time.Minute,
				Enabled:  true,
			},
			"login": {
				Requests: 5,
				Window:   time.Minute,
				Enabled:  true,
			},
		},
	}
}

// RateLimit creates middleware for a specific rate limit type
func (rl *RateLimiter) RateLimit(limitType string, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		config, exists := rl.configs[limitType]
		if !exists || !config.Enabled {
			c.Next()
			return
		}

		key := limitType + ":" + keyFunc(c)
		allowed, resetTime := rl.checkRateLimit(key, config)
		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(time.Until(resetTime).Seconds())))
			c.String(http.StatusTooManyRequests, "Demasiadas solicitudes. Intenta de nuevo en unos minutos.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimit records the request and reports whether it is allowed.
func (rl *RateLimiter) checkRateLimit(key string, config RateLimitConfig) (bool, time.Time) {
	now := time.Now()

	entryInterface, _ := rl.entries.LoadOrStore(key, &RateLimitEntry{})
	entry := entryInterface.(*RateLimitEntry)

	entry.mutex.Lock()
	defer entry.mutex.Unlock()

	// Drop requests that fell out of the window
	cutoff := now.Add(-config.Window)
	valid := entry.Requests[:0]
	for _, t := range entry.Requests {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	entry.Requests = valid

	if len(entry.Requests) >= config.Requests {
		oldest := entry.Requests[0]
		return false, oldest.Add(config.Window)
	}

	entry.Requests = append(entry.Requests, now)
	return true, time.Time{}
}

// KeyByIP keys rate limits by client address.
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}
