/*
Package limiter rate limits requests per client IP address.

Each IP gets its own token bucket (rate.Limiter). A background goroutine
periodically drops buckets that have refilled completely, so the map does
not grow without bound.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"friendlink/internal/pkg/errs"
	"friendlink/internal/pkg/logx"
	"friendlink/internal/pkg/resp"
)

// cleanupInterval is how often idle per-IP buckets are swept.
const cleanupInterval = 3 * time.Minute

// IPRateLimiter maps client IP addresses to token-bucket limiters.
type IPRateLimiter struct {
	mu     sync.RWMutex
	limits map[string]*rate.Limiter

	// r and b are the rate and burst applied to every new bucket.
	r rate.Limit
	b int
}

// NewIPRateLimiter creates an IPRateLimiter with the given rate and burst
// and starts the background sweep of idle buckets.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}

	go i.sweepIdle()

	return i
}

// GetLimiter returns the limiter for ip, creating one on first sight.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limits[ip]
	i.mu.RUnlock()

	if !exists {
		i.mu.Lock()
		limiter, exists = i.limits[ip]
		if !exists {
			limiter = rate.NewLimiter(i.r, i.b)
			i.limits[ip] = limiter
		}
		i.mu.Unlock()
	}

	return limiter
}

// sweepIdle removes buckets whose tokens have fully refilled, meaning the IP
// has been quiet for at least a full burst worth of time.
func (i *IPRateLimiter) sweepIdle() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		i.mu.Lock()
		removed := 0
		for ip, limiter := range i.limits {
			if limiter.TokensAt(time.Now()) >= float64(limiter.Burst()) {
				delete(i.limits, ip)
				removed++
			}
		}
		remaining := len(i.limits)
		i.mu.Unlock()

		logx.Info("Rate limiter sweep finished", "removed", removed, "remaining", remaining)
	}
}

// ClientIP extracts the host part of a request's remote address.
func ClientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if ip == "" {
		ip = "unknown_ip"
	}

	return ip
}

// Middleware rejects requests exceeding the per-IP limit with a 429 response.
func (i *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i.GetLimiter(ClientIP(r)).Allow() {
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		next.ServeHTTP(w, r)
	})
}
