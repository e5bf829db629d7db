package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginRateLimiter throttles credential-guessing per client IP.
type LoginRateLimiter struct {
	r     rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewLoginRateLimiter allows roughly perMinute attempts per IP per
// minute and starts a background sweep of idle entries.
func NewLoginRateLimiter(perMinute int) *LoginRateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	rl := &LoginRateLimiter{
		r:        rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		limiters: make(map[string]*clientLimiter),
		stopCh:   make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *LoginRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
			return
		}
		c.Next()
	}
}

func (rl *LoginRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	cl, ok := rl.limiters[ip]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.limiters[ip] = cl
	}
	cl.lastAccess = time.Now()
	rl.mu.Unlock()
	return cl.limiter.Allow()
}

func (rl *LoginRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(10 * time.Minute)
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *LoginRateLimiter) cleanup(ttl time.Duration) {
	now := time.Now()
	rl.mu.Lock()
	for ip, cl := range rl.limiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.limiters, ip)
		}
	}
	rl.mu.Unlock()
}
