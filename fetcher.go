package leadscout

import (
	"context"
	"fmt"
)

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single GET of the URL and returns the response body.
	// The context controls timeout and cancellation. Non-2xx statuses and
	// non-HTML content types return a *FetchError.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases client resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// FetchError describes a per-page fetch failure. Fetch failures are
// recoverable: the page contributes nothing to the crawl but the crawl
// continues.
type FetchError struct {
	// URL is the page that failed.
	URL string

	// StatusCode is the HTTP status, or zero for transport errors.
	StatusCode int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}
