package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/salonops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory fixed-window limiter. Counters live per key
// and reset when the window elapses; a background sweep drops keys that have
// gone quiet so the map cannot grow without bound.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	span    time.Duration
}

type window struct {
	used    int
	startAt time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per span
func NewRateLimiter(limit int, span time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		span:    span,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.span * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, w := range rl.windows {
			if now.Sub(w.startAt) > rl.span*2 {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Take consumes one request slot for the key. It reports whether the request
// is allowed and how many slots remain in the current window.
func (rl *RateLimiter) Take(key string) (allowed bool, remaining int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.startAt) >= rl.span {
		rl.windows[key] = &window{used: 1, startAt: now}
		return true, rl.limit - 1
	}

	if w.used >= rl.limit {
		return false, 0
	}
	w.used++
	return true, rl.limit - w.used
}

// RateLimit limits requests per client IP, or per user when authenticated
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return RateLimitByKey(limiter, func(c *gin.Context) string {
		if userID := GetJWTUserID(c); userID != "" {
			return userID + ":" + c.ClientIP()
		}
		return c.ClientIP()
	})
}

// RateLimitByKey limits requests grouped by a caller-supplied key function
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := limiter.Take(keyFunc(c))
		if !allowed {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				dto.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
			))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}
