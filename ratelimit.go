package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Fixed-window limits matching the upstream deployment: 100 requests per
// client IP per 15 minutes.
const (
	rateLimitWindow = 15 * time.Minute
	rateLimitMax    = 100
)

type rateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	counts map[string]*windowCount
}

type windowCount struct {
	n     int
	reset time.Time
}

func newRateLimiter(window time.Duration, max int) *rateLimiter {
	return &rateLimiter{
		window: window,
		max:    max,
		counts: make(map[string]*windowCount),
	}
}

// allow counts a hit for key and reports whether it is still inside the
// limit. Expired windows are reset lazily on access.
func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	wc, ok := l.counts[key]
	if !ok || now.After(wc.reset) {
		l.counts[key] = &windowCount{n: 1, reset: now.Add(l.window)}
		return true
	}
	wc.n++
	return wc.n <= l.max
}

func rateLimitMiddleware(l *rateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
