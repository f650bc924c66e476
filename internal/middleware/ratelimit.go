package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

type client struct {
	count       int
	windowStart time.Time
}

// RateLimiter throttles requests per remote address over a fixed window.
// The server mounts one instance on the model-calling routes, which are
// the expensive paths.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   int
	window  time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		window:  window,
	}
	go rl.evictLoop()
	return rl
}

// evictLoop drops clients whose window has long expired so the map does
// not grow with every address ever seen.
func (rl *RateLimiter) evictLoop() {
	for {
		time.Sleep(rl.window)
		rl.mu.Lock()
		cutoff := time.Now().Add(-2 * rl.window)
		for addr, c := range rl.clients {
			if c.windowStart.Before(cutoff) {
				delete(rl.clients, addr)
			}
		}
		rl.mu.Unlock()
	}
}

// allow records one request for addr and reports whether it is within
// the limit for the current window.
func (rl *RateLimiter) allow(addr string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[addr]
	if !ok || now.Sub(c.windowStart) > rl.window {
		rl.clients[addr] = &client{count: 1, windowStart: now}
		return true
	}

	c.count++
	return c.count <= rl.limit
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string, r *http.Request) {
	requestID := r.Header.Get("X-Request-ID")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":       code,
			"message":    message,
			"request_id": requestID,
		},
	})
}
