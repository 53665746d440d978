package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP. Idle buckets are
// pruned so the map does not grow without bound.
type RateLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	clients   map[string]*client
	ttl       time.Duration
	lastPrune time.Time
	now       func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter returns a limiter allowing perSecond sustained requests per
// client IP with bursts of up to burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:     rate.Limit(perSecond),
		burst:     burst,
		clients:   make(map[string]*client),
		ttl:       10 * time.Minute,
		lastPrune: time.Now(),
		now:       time.Now,
	}
}

// Reserve takes a token for ip. It returns ok=false and the wait until the
// next token when the bucket is empty.
func (l *RateLimiter) Reserve(ip string) (ok bool, retryAfter time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(now)

	c, found := l.clients[ip]
	if !found {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	res := c.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if d := res.DelayFrom(now); d > 0 {
		res.CancelAt(now)
		return false, d
	}
	return true, 0
}

// Len reports how many clients are currently tracked.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *RateLimiter) pruneLocked(now time.Time) {
	if now.Sub(l.lastPrune) < 2*time.Minute {
		return
	}
	l.lastPrune = now

	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > l.ttl {
			delete(l.clients, ip)
		}
	}
}

// Handler returns a middleware that rejects requests over the limit with
// 429 and a Retry-After header in whole seconds.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := l.Reserve(clientIP(r))
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP uses RemoteAddr only. Run chi's RealIP first when the API sits
// behind a trusted proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
