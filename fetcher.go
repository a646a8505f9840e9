package rssfixer

import "context"

// Fetcher retrieves page HTML from URLs.
type Fetcher interface {
	// Fetch returns the body of the page at url. Transport failures,
	// timeouts and non-success responses are reported as ENETWORK.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
