// Package mock provides function-field mock implementations of the domain
// interfaces for testing.
package mock

import (
	"context"

	"coursetree"
)

var _ coursetree.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of coursetree.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

var _ coursetree.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of coursetree.Limiter.
type Limiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *Limiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn != nil {
		return l.WaitFn(ctx, domain)
	}
	return nil
}
