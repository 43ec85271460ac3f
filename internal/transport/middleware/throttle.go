package middleware

import (
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// Throttle is a per-IP token bucket in front of every route. It absorbs
// bursts; the named quotas in RateGuard apply per operation on top of it.
type Throttle struct {
	limiters *gocache.Cache
	limit    rate.Limit
	burst    int
	idle     time.Duration
}

// NewThrottle creates a Throttle allowing rps requests per second with the
// given burst. Limiters idle for longer than idle are evicted.
func NewThrottle(rps float64, burst int, idle time.Duration) *Throttle {
	return &Throttle{
		limiters: gocache.New(idle, idle),
		limit:    rate.Limit(rps),
		burst:    burst,
		idle:     idle,
	}
}

func (t *Throttle) limiter(ip string) *rate.Limiter {
	if v, ok := t.limiters.Get(ip); ok {
		t.limiters.Set(ip, v, t.idle)
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(t.limit, t.burst)
	if err := t.limiters.Add(ip, l, t.idle); err != nil {
		// Lost the race to another request from the same address.
		if v, ok := t.limiters.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

// Len returns the number of tracked addresses.
func (t *Throttle) Len() int { return t.limiters.ItemCount() }

// Middleware rejects requests over the per-IP rate with 429.
func (t *Throttle) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !t.limiter(ClientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
