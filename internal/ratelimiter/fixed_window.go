package ratelimiter

import (
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// FixedWindowRateLimiter allows limit requests per key in each window. Windows start at a
// key's first request.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

func NewFixedWindowLimiter(limit int, w time.Duration) *FixedWindowRateLimiter {
	return &FixedWindowRateLimiter{
		clients: make(map[string]*window),
		limit:   limit,
		window:  w,
		now:     time.Now,
	}
}

// Allow records one request for key. When denied it also returns how long until the
// current window closes.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.start) >= rl.window {
		rl.clients[key] = &window{start: now, count: 1}
		return true, 0
	}

	if w.count < rl.limit {
		w.count++
		return true, 0
	}
	return false, w.start.Add(rl.window).Sub(now)
}

// Sweep drops windows that have already closed.
func (rl *FixedWindowRateLimiter) Sweep() {
	rl.Lock()
	defer rl.Unlock()

	now := rl.now()
	for k, w := range rl.clients {
		if now.Sub(w.start) >= rl.window {
			delete(rl.clients, k)
		}
	}
}
