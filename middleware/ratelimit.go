package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type bucket struct {
	remaining float64
	seenAt    time.Time
}

// RateLimiter throttles requests per client IP using a token bucket.
// Buckets refill continuously, so a client that backs off regains capacity
// without waiting for a window boundary.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	burst   float64
	rate    float64 // tokens per second
}

// NewRateLimiter allows maxRequests per perDuration for each client IP,
// with bursts up to maxRequests.
func NewRateLimiter(maxRequests int, perDuration time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		burst:   float64(maxRequests),
		rate:    float64(maxRequests) / perDuration.Seconds(),
	}
	go rl.evictStale()
	return rl
}

// evictStale drops buckets for clients that have gone quiet, so the map
// does not grow without bound.
func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-10 * time.Minute)
		rl.mu.Lock()
		for ip, b := range rl.buckets {
			if b.seenAt.Before(cutoff) {
				delete(rl.buckets, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[clientIP]
	if !ok {
		rl.buckets[clientIP] = &bucket{remaining: rl.burst - 1, seenAt: now}
		return true
	}

	b.remaining += now.Sub(b.seenAt).Seconds() * rl.rate
	if b.remaining > rl.burst {
		b.remaining = rl.burst
	}
	b.seenAt = now

	if b.remaining < 1 {
		return false
	}
	b.remaining--
	return true
}

// Middleware rejects over-limit requests with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}
