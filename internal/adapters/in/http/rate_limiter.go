package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/verdantscapes/availability-service/internal/core/ports/out"
)

// RateLimiter throttles requests per client IP. Limiters live in a bounded
// LRU so a scan across many source addresses cannot grow the store without
// limit; evicting a cold entry just resets that client's budget.
type RateLimiter struct {
	limiters  *lru.Cache[string, *rate.Limiter]
	mu        sync.Mutex
	perMinute int
	logger    out.LoggerPort
}

func NewRateLimiter(perMinute, storeSize int, logger out.LoggerPort) (*RateLimiter, error) {
	limiters, err := lru.New[string, *rate.Limiter](storeSize)
	if err != nil {
		return nil, err
	}

	return &RateLimiter{
		limiters:  limiters,
		perMinute: perMinute,
		logger:    logger,
	}, nil
}

func (r *RateLimiter) limiterFor(ip string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	limiter, exists := r.limiters.Get(ip)
	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(r.perMinute)), r.perMinute)
		r.limiters.Add(ip, limiter)
	}
	return limiter
}

// Middleware rejects clients that exceed their per-minute budget.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ip := ctx.ClientIP()

		if !r.limiterFor(ip).Allow() {
			r.logger.Warn("http.rate_limit.exceeded", out.LogFields{
				"ip": ip,
			})
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Try again later.",
			})
			return
		}

		ctx.Next()
	}
}
