package webserver

import (
	"sync"
	"time"
)

// RateLimiter throttles form submissions per client IP.
type RateLimiter struct {
	clients map[string]time.Time
	mu      sync.Mutex
	limit   time.Duration
}

func NewRateLimiter(limit time.Duration) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]time.Time),
		limit:   limit,
	}
}

func (rl *RateLimiter) CanUse(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lastUse, exists := rl.clients[clientIP]
	if !exists || time.Since(lastUse) >= rl.limit {
		rl.clients[clientIP] = time.Now()
		return true
	}
	return false
}

func (rl *RateLimiter) TimeUntilNext(clientIP string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lastUse, exists := rl.clients[clientIP]
	if !exists {
		return 0
	}

	elapsed := time.Since(lastUse)
	if elapsed >= rl.limit {
		return 0
	}
	return rl.limit - elapsed
}
