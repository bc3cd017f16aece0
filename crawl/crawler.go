// Package crawl provides crawl orchestration: it drains the URL frontier
// with a bounded worker pool, runs fetch and extraction per page, feeds
// discovered links back into the frontier, and aggregates emails under a
// single mutual-exclusion region.
package crawl

import (
	"context"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/passivleads/leadscout"
	"golang.org/x/sync/errgroup"
)

// Crawler orchestrates a single-domain email crawl.
type Crawler struct {
	Fetcher leadscout.Fetcher
	Parser  leadscout.Parser
	Emails  leadscout.EmailExtractor
	Links   leadscout.LinkExtractor

	// Sitemaps, when set, seeds the frontier from the site's sitemaps
	// after the base page has been fetched. Optional.
	Sitemaps leadscout.SitemapService

	// RateLimiter, when set, throttles fetches per domain. Optional.
	RateLimiter leadscout.DomainLimiter
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type   ProgressType
	URL    string
	Emails int
	Error  error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	emails []string
	links  []string
	err    error
}

// Crawl visits up to target.MaxPages same-domain pages starting from
// target.BaseURL and returns the aggregated result. Individual page
// failures are absorbed: a failed page contributes nothing but still
// consumes one unit of the page budget. There is no failed terminal state
// for a crawl as a whole.
func (c *Crawler) Crawl(ctx context.Context, target leadscout.Target, progress ProgressFunc) (*leadscout.Result, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	origin := target.Origin()
	frontier := NewFrontier(target.MaxPages)

	// Shared aggregation state. Every mutation happens inside one critical
	// section per worker completion, so the union/count aggregation stays
	// exactly-once.
	var (
		mu             sync.Mutex
		emailSet       = make(map[string]struct{})
		importantPages []string
		pagesScraped   int
	)

	aggregate := func(pageURL string, res pageResult) {
		mu.Lock()
		defer mu.Unlock()

		pagesScraped++
		if leadscout.IsImportant(pageURL) {
			importantPages = append(importantPages, pageURL)
		}
		for _, email := range res.emails {
			emailSet[email] = struct{}{}
		}
		for _, link := range res.links {
			frontier.Schedule(link)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, URL: target.BaseURL})
	}

	// Fetch the seed page synchronously to bootstrap link discovery. This
	// guarantees the home page is always visited even with a budget of 1.
	frontier.Schedule(target.BaseURL)
	for _, seedURL := range frontier.TakeBatch(1) {
		res := c.processPage(ctx, seedURL, target.Timeout)
		aggregate(seedURL, res)
		c.notify(progress, seedURL, res)
	}

	// Seed additional URLs from sitemaps when configured. Sitemap absence
	// or parse failure is not an error; discovery simply proceeds from
	// page links alone.
	if c.Sitemaps != nil {
		if urls, err := c.Sitemaps.DiscoverURLs(ctx, target.BaseURL); err == nil {
			for _, u := range urls {
				if leadscout.IsAdmissible(leadscout.Normalize(u), origin) {
					frontier.Schedule(u)
				}
			}
		}
	}

	// Drain the frontier one batch at a time until it is empty or the page
	// budget is spent.
	for ctx.Err() == nil {
		batch := frontier.TakeBatch(target.MaxWorkers)
		if len(batch) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(target.MaxWorkers)

		for _, pageURL := range batch {
			pageURL := pageURL
			g.Go(func() error {
				res := c.processPage(gctx, pageURL, target.Timeout)
				aggregate(pageURL, res)
				c.notify(progress, pageURL, res)
				return nil
			})
		}

		// Wait for the whole batch so newly discovered links are visible
		// to the next TakeBatch.
		_ = g.Wait()
	}

	emails := make([]string, 0, len(emailSet))
	for email := range emailSet {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, URL: target.BaseURL, Emails: len(emails)})
	}

	return &leadscout.Result{
		BaseURL:        target.BaseURL,
		PagesScraped:   pagesScraped,
		Emails:         emails,
		ImportantPages: importantPages,
		TotalEmails:    len(emails),
	}, nil
}

// processPage fetches and extracts a single page. All failures are
// per-page: the zero-value contribution is returned alongside the error.
func (c *Crawler) processPage(ctx context.Context, pageURL string, timeout time.Duration) pageResult {
	if c.RateLimiter != nil {
		u, err := url.Parse(pageURL)
		if err != nil {
			return pageResult{err: err}
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return pageResult{err: err}
		}
	}

	fetchCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	html, err := c.Fetcher.Fetch(fetchCtx, pageURL)
	if err != nil {
		return pageResult{err: err}
	}

	doc, err := c.Parser.Parse(html)
	if err != nil {
		return pageResult{err: err}
	}

	emails := c.Emails.Extract(doc)

	// A link extraction anomaly yields an empty contribution rather than
	// failing the page; the emails already found still count.
	links, err := c.Links.ExtractLinks(doc, pageURL)
	if err != nil {
		links = nil
	}

	return pageResult{emails: emails, links: links}
}

func (c *Crawler) notify(progress ProgressFunc, pageURL string, res pageResult) {
	if progress == nil {
		return
	}
	if res.err != nil {
		progress(ProgressEvent{Type: ProgressFailed, URL: pageURL, Error: res.err})
		return
	}
	progress(ProgressEvent{Type: ProgressCompleted, URL: pageURL, Emails: len(res.emails)})
}
