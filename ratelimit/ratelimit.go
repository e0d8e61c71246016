// Package ratelimit provides the token-bucket HTTP middleware that enforces
// the external rate-limiting collaborator's budget, returning 429 once a
// caller's bucket is exhausted.
package ratelimit

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter grants one token bucket per client key (typically remote IP).
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	r       rate.Limit
	burst   int
}

// New creates a Limiter allowing requestsPerSecond sustained, with a bucket
// of burst tokens in total to absorb a spike.
func New(requestsPerSecond float64, burst int) *Limiter {
	return &Limiter{
		buckets: make(map[string]*rate.Limiter),
		r:       rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

func (l *Limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.r, l.burst)
		l.buckets[key] = b
	}
	return b
}

// Allow reports whether a request keyed by key may proceed right now,
// consuming a token if so.
func (l *Limiter) Allow(key string) bool {
	return l.bucket(key).Allow()
}

// Middleware wraps next, rejecting requests with 429 once the caller
// identified by keyFunc has exhausted its bucket.
func (l *Limiter) Middleware(keyFunc func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(keyFunc(r)) {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RemoteAddrKey is the default keyFunc, bucketing by the request's
// RemoteAddr.
func RemoteAddrKey(r *http.Request) string { return r.RemoteAddr }
