package coursetree

import "context"

// Fetcher retrieves raw markup from URLs. The tree assembler does not
// retry; retry policy, timeouts, and request headers belong to the
// implementation. A timeout is reported as an ordinary fetch error.
type Fetcher interface {
	// Fetch returns the markup text at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Limiter enforces a minimum delay between successive requests to a domain.
// This is a politeness mechanism against the origin server, not a
// performance knob; the assembler waits before every fetch at every level.
type Limiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
