package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"airport-booking/skyport/internal/common"
	"airport-booking/skyport/internal/constants"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP. Idle buckets expire.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *cache.Cache
	mu       sync.Mutex
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: cache.New(10*time.Minute, 5*time.Minute),
	}
}

func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, found := rl.limiters.Get(ip); found {
		limiter := v.(*rate.Limiter)
		rl.limiters.SetDefault(ip, limiter)
		return limiter
	}
	limiter := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters.SetDefault(ip, limiter)
	return limiter
}

// RateLimitMiddleware answers 429 once a client exhausts its bucket
func (rl *RateLimiter) RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !rl.getLimiter(ip).Allow() {
			w.Header().Set("Retry-After", "1")
			common.RespondError(w, time.Now(), nil, constants.MsgRateLimited, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
