package ratelimit

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"ott-manager.app/api/internal/logger"
)

type Limiter interface {
	Allow(addr string) bool
	RetryAfter(addr string) time.Duration
}

type window struct {
	count int
	start time.Time
}

// FixedWindowLimiter allows maxRequests per client within each window.
// A window starts with the client's first request after the previous one
// expired.
type FixedWindowLimiter struct {
	maxRequests int
	window      time.Duration
	requests    map[string]*window
	lastSweep   time.Time
	now         func() time.Time
	mutex       sync.Mutex
}

func New(maxRequests int, interval time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		maxRequests: maxRequests,
		window:      interval,
		requests:    make(map[string]*window),
		now:         time.Now,
	}
}

func (rl *FixedWindowLimiter) Allow(addr string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	rl.sweep(now)

	w := rl.requests[addr]
	if w == nil || now.Sub(w.start) > rl.window {
		if rl.maxRequests == 0 {
			return false
		}
		rl.requests[addr] = &window{count: 1, start: now}
		return true
	}

	if w.count >= rl.maxRequests {
		return false
	}
	w.count++

	return true
}

// RetryAfter reports how long addr has to wait for its window to reset.
func (rl *FixedWindowLimiter) RetryAfter(addr string) time.Duration {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	w := rl.requests[addr]
	if w == nil {
		return 0
	}
	remaining := rl.window - rl.now().Sub(w.start)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (rl *FixedWindowLimiter) Len() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return len(rl.requests)
}

// sweep drops expired windows at most once per window so the map does not
// grow with every client ever seen.
func (rl *FixedWindowLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for addr, w := range rl.requests {
		if now.Sub(w.start) > rl.window {
			delete(rl.requests, addr)
		}
	}
	rl.lastSweep = now
}

// ClientIP strips the port from the request's remote address.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header.
func Middleware(rl Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if rl.Allow(ip) {
				next.ServeHTTP(w, r)
				return
			}

			retry := int(math.Ceil(rl.RetryAfter(ip).Seconds()))
			if retry < 1 {
				retry = 1
			}

			logger.Warn("Rate limit exceeded", map[string]interface{}{
				"remote_ip": ip,
				"path":      r.URL.Path,
			})

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
		})
	}
}
