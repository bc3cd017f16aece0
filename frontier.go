package leadscout

import "context"

// Frontier manages the crawl queue with deduplication, binary priority,
// and a page budget. Implementations must be safe for concurrent use.
type Frontier interface {
	// Schedule normalizes the URL and enqueues it unless already seen.
	// Important-keyword URLs are queued ahead of normal ones.
	// Returns false if the URL was already scheduled.
	Schedule(url string) bool

	// TakeBatch pops up to n URLs, important queue first, never exceeding
	// the remaining page budget. The budget decreases by the number of
	// URLs returned.
	TakeBatch(n int) []string

	// Remaining returns the unspent page budget.
	Remaining() int

	// Len returns the number of queued URLs.
	Len() int

	// Seen returns true if the URL has been scheduled or completed.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SitemapService discovers page URLs from a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the URLs listed in the site's sitemaps.
	// Returns an empty slice (not nil) if no sitemaps are found.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
