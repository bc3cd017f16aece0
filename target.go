package leadscout

import (
	"net/url"
	"time"
)

// Default crawl parameters. These match the defaults exposed at the API
// boundary.
const (
	DefaultMaxPages   = 50
	DefaultTimeout    = 10 * time.Second
	DefaultMaxWorkers = 20

	// MaxPagesLimit is the hard upper bound on the page budget accepted
	// from callers.
	MaxPagesLimit = 500
)

// Target describes a single crawl invocation. It is immutable for the
// lifetime of the crawl that owns it.
type Target struct {
	// BaseURL is the absolute URL the crawl starts from.
	BaseURL string

	// MaxPages is the hard cap on pages fetched (1 to MaxPagesLimit).
	MaxPages int

	// Timeout applies to each individual page fetch.
	Timeout time.Duration

	// MaxWorkers bounds the number of pages fetched concurrently.
	MaxWorkers int
}

// NewTarget returns a Target for baseURL with default parameters.
func NewTarget(baseURL string) Target {
	return Target{
		BaseURL:    baseURL,
		MaxPages:   DefaultMaxPages,
		Timeout:    DefaultTimeout,
		MaxWorkers: DefaultMaxWorkers,
	}
}

// Validate returns an EINVALID error if the target cannot start a crawl.
// The crawler never begins work with an invalid target.
func (t Target) Validate() error {
	u, err := url.Parse(t.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "base URL must be absolute with an http or https scheme")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if t.MaxPages < 1 || t.MaxPages > MaxPagesLimit {
		return Errorf(EINVALID, "max pages must be between 1 and %d", MaxPagesLimit)
	}
	if t.Timeout <= 0 {
		return Errorf(EINVALID, "timeout must be positive")
	}
	if t.MaxWorkers < 1 {
		return Errorf(EINVALID, "max workers must be positive")
	}
	return nil
}

// Origin returns the scheme://host prefix of the target used for
// same-domain admission checks.
func (t Target) Origin() string {
	u, err := url.Parse(t.BaseURL)
	if err != nil {
		return t.BaseURL
	}
	return u.Scheme + "://" + u.Host
}
