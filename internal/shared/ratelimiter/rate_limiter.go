package ratelimiter

import (
	"log/slog"
	"time"
)

// RateLimiterInterface limits the frequency of outbound operations such as
// mail submission.
type RateLimiterInterface interface {
	WaitIfNeeded()
}

// RateLimiter caps the number of operations per interval.
type RateLimiter struct {
	limit     int           // maximum operations per interval
	interval  time.Duration // reset window
	count     int
	lastReset time.Time
}

// NewRateLimiter creates a new RateLimiter instance.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
	}
}

// WaitIfNeeded blocks until the current window allows another operation.
func (rl *RateLimiter) WaitIfNeeded() {
	now := time.Now()
	// Reset the counter once the interval has passed
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count > rl.limit {
		sleep := rl.interval - now.Sub(rl.lastReset)
		if sleep > 0 {
			slog.Warn("rate limit hit, sleeping", "limit", rl.limit, "sleep", sleep)
			time.Sleep(sleep)
		}
		rl.count = 1
		rl.lastReset = time.Now()
	}
}
