// Package throttle enforces per-client evaluation rate limits.
//
// Each client gets its own token bucket (golang.org/x/time/rate). Clients are
// identified by the X-Client-ID header, falling back to the remote address.
// Buckets that have been idle long enough are dropped by Sweep.
package throttle

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/calclab/calc-engine/internal/metrics"
)

// ErrRateLimited is returned when a client has exhausted its bucket.
var ErrRateLimited = errors.New("throttle: rate limit exceeded")

// ClientHeader carries the caller-chosen client identity.
const ClientHeader = "X-Client-ID"

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter holds one token bucket per client key.
type ClientLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewClientLimiter allows perSecond sustained requests with the given burst
// per client. A non-positive perSecond disables limiting.
func NewClientLimiter(perSecond float64, burst int) *ClientLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
		now:     time.Now,
	}
}

// Allow consumes one token for client, or returns ErrRateLimited.
func (l *ClientLimiter) Allow(client string) error {
	l.mu.Lock()
	now := l.now()
	b, ok := l.buckets[client]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	allowed := b.lim.AllowN(now, 1)
	l.mu.Unlock()

	if !allowed {
		return ErrRateLimited
	}
	return nil
}

// Sweep drops buckets not used within idle and returns how many were removed.
func (l *ClientLimiter) Sweep(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	removed := 0
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// Clients returns the number of tracked buckets.
func (l *ClientLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Middleware rejects over-limit requests with 429.
func (l *ClientLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := l.Allow(ClientKey(r)); err != nil {
			metrics.ThrottleRejections.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClientKey identifies the caller of r.
func ClientKey(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(ClientHeader)); id != "" {
		return id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
