package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/marinsprosper/minha-plataforma/utils"
)

// In-memory per-IP rate limiter with a sliding window. Used only on the
// credential endpoints (login/register); everything else is bearer-scoped.

type IPRateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	limit  int
	window time.Duration
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	rl := &IPRateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}
	go rl.cleanupLoop()
	return rl
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *IPRateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.window)
	kept := rl.hits[ip][:0]
	for _, t := range rl.hits[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= rl.limit {
		rl.hits[ip] = kept
		return false
	}
	rl.hits[ip] = append(kept, now)
	return true
}

func (rl *IPRateLimiter) cleanupLoop() {
	for range time.Tick(rl.window) {
		cutoff := time.Now().Add(-rl.window)
		rl.mu.Lock()
		for ip, ts := range rl.hits {
			if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
				delete(rl.hits, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r), time.Now()) {
			utils.WriteError(w, http.StatusTooManyRequests, "Muitas tentativas. Tente novamente em instantes.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
