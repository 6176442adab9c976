package fetcher

import (
	"context"
	"sync"
)

// Fixture is a Fetcher that serves canned pages keyed by absolute URL.
// It is safe for concurrent use and records every URL it was asked for.
type Fixture struct {
	pages map[string]string

	mu       sync.Mutex
	requests []string
}

// NewFixture creates a Fixture serving the given pages.
func NewFixture(pages map[string]string) *Fixture {
	copied := make(map[string]string, len(pages))
	for k, v := range pages {
		copied[k] = v
	}
	return &Fixture{pages: copied}
}

// Fetch implements Fetcher. Unknown URLs fail with a NetworkError wrapping ErrNotFound.
func (f *Fixture) Fetch(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, url)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", &NetworkError{URL: url, Err: err}
	}

	body, ok := f.pages[url]
	if !ok {
		return "", &NetworkError{URL: url, Err: ErrNotFound}
	}
	return body, nil
}

// Requests returns the URLs fetched so far, in call order.
func (f *Fixture) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}
