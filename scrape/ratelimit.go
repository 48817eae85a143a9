package scrape

import (
	"context"
	"sync"
	"time"

	"coursetree"

	"golang.org/x/time/rate"
)

var _ coursetree.Limiter = (*DelayLimiter)(nil)

// DefaultFetchInterval is the default minimum delay between successive
// requests to the same domain. It applies between every pair of fetches at
// every hierarchy level as politeness toward the origin server.
const DefaultFetchInterval = 500 * time.Millisecond

// DelayLimiter enforces a minimum interval between requests per domain
// using token buckets. Burst is 1, so the interval is a hard floor.
type DelayLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	interval time.Duration
}

// NewDelayLimiter creates a DelayLimiter with the given minimum interval
// between requests. A non-positive interval falls back to the default.
func NewDelayLimiter(interval time.Duration) *DelayLimiter {
	if interval <= 0 {
		interval = DefaultFetchInterval
	}
	return &DelayLimiter{
		limiters: make(map[string]*rate.Limiter),
		interval: interval,
	}
}

// Wait blocks until the interval since the domain's previous request has
// elapsed. Returns an error if the context is canceled first.
func (d *DelayLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.interval), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
