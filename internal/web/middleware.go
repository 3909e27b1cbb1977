package web

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Recovery recovers from panics in handlers and answers with a JSON 500.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "An unexpected error occurred",
				})
			}
		}()
		c.Next()
	}
}

// RequestLogger logs one line per request.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// RateLimiter is a per-client token bucket.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     map[string]float64
	lastRefill map[string]time.Time
	rate       float64 // tokens per second
	bucketSize float64
	lastSweep  time.Time
	now        func() time.Time
}

// sweepInterval is how often Allow drops buckets of idle clients.
const sweepInterval = time.Minute

// NewRateLimiter creates a limiter refilling rate tokens per second up to
// bucketSize tokens per client.
func NewRateLimiter(rate, bucketSize float64) *RateLimiter {
	return &RateLimiter{
		tokens:     make(map[string]float64),
		lastRefill: make(map[string]time.Time),
		rate:       rate,
		bucketSize: bucketSize,
		now:        time.Now,
	}
}

// Allow takes one token from the bucket of client and reports whether one
// was available.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	last, seen := rl.lastRefill[client]
	if !seen {
		rl.tokens[client] = rl.bucketSize
		last = now
	}

	elapsed := now.Sub(last).Seconds()
	rl.tokens[client] = min(rl.bucketSize, rl.tokens[client]+elapsed*rl.rate)
	rl.lastRefill[client] = now

	if rl.tokens[client] < 1 {
		return false
	}
	rl.tokens[client]--
	return true
}

// sweep forgets clients whose bucket has refilled completely. Such a
// client is indistinguishable from one never seen. Without refill a bucket
// never fills up again, so nothing is forgotten.
func (rl *RateLimiter) sweep(now time.Time) {
	if rl.rate <= 0 || now.Sub(rl.lastSweep) < sweepInterval {
		return
	}
	rl.lastSweep = now

	full := time.Duration(rl.bucketSize / rl.rate * float64(time.Second))
	for client, last := range rl.lastRefill {
		if now.Sub(last) >= full {
			delete(rl.lastRefill, client)
			delete(rl.tokens, client)
		}
	}
}

// Len returns the number of clients currently tracked.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.lastRefill)
}

// RateLimit rejects requests with 429 once the client's bucket is empty.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
