package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/atabernermiller/taberner-studio-app/internal/logger"
)

// ipLimiterTTL is how long an idle client's limiter sticks around before
// the sweep drops it.
const ipLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out a token-bucket limiter per client IP. One instance
// per budget; routes with different budgets get different instances.
type RateLimiter struct {
	log   *logger.Logger
	mu    sync.Mutex
	perIP map[string]*clientLimiter

	limit rate.Limit
	burst int
}

// NewRateLimiter allows perMinute requests per client IP with a burst of the
// same size.
func NewRateLimiter(perMinute int, log *logger.Logger) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	rl := &RateLimiter{
		log:   log.With("middleware", "RateLimiter"),
		perIP: make(map[string]*clientLimiter),
		limit: rate.Every(time.Minute / time.Duration(perMinute)),
		burst: perMinute,
	}
	go rl.sweep()
	return rl
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.limiterFor(ip).Allow() {
			rl.log.Warn("rate limit exceeded", "ip", ip, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"message": "too many requests, slow down",
					"code":    "rate_limited",
				},
			})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cl, ok := rl.perIP[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.perIP[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(ipLimiterTTL)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-ipLimiterTTL)
		rl.mu.Lock()
		for ip, cl := range rl.perIP {
			if cl.lastSeen.Before(cutoff) {
				delete(rl.perIP, ip)
			}
		}
		rl.mu.Unlock()
	}
}
