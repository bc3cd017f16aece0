package http

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/passivleads/leadscout"
)

// maxSitemapFetches bounds how many sitemap documents a single discovery
// will download, including those reached through sitemap indexes.
const maxSitemapFetches = 20

// Ensure SitemapService implements leadscout.SitemapService.
var _ leadscout.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from a site's sitemaps. It consults
// robots.txt for Sitemap directives and falls back to /sitemap.xml.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the page URLs listed in the site's sitemaps.
// Returns an empty slice (not nil) if no sitemaps are found. Off-host
// admission is the caller's concern; this returns locations as listed.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "invalid base URL %q", baseURL)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemapURLs := s.findSitemapURLs(ctx, root)
	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	walk := &sitemapWalk{
		seenSitemaps: make(map[string]bool),
		seenURLs:     make(map[string]bool),
	}
	urls := []string{}
	for _, sitemapURL := range sitemapURLs {
		found, err := s.collect(ctx, sitemapURL, walk)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// A broken sitemap does not abort discovery.
			continue
		}
		urls = append(urls, found...)
	}

	return urls, nil
}

// sitemapWalk tracks state across a recursive sitemap traversal.
type sitemapWalk struct {
	seenSitemaps map[string]bool
	seenURLs     map[string]bool
	fetches      int
}

// findSitemapURLs reads Sitemap directives from robots.txt, falling back
// to the conventional /sitemap.xml location.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) []string {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps := s.sitemapsFromRobots(ctx, robotsURL); len(sitemaps) > 0 {
		return sitemaps
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	if s.exists(ctx, fallback) {
		return []string{fallback}
	}
	return nil
}

// sitemapsFromRobots extracts Sitemap: directives from robots.txt.
// Any failure yields no directives.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) []string {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) > 8 && strings.EqualFold(line[:8], "sitemap:") {
			if u := strings.TrimSpace(line[8:]); u != "" {
				sitemaps = append(sitemaps, u)
			}
		}
	}
	return sitemaps
}

// collect fetches a sitemap and returns its page URLs, following
// sitemapindex entries recursively up to maxSitemapFetches documents.
func (s *SitemapService) collect(ctx context.Context, sitemapURL string, walk *sitemapWalk) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if walk.seenSitemaps[sitemapURL] || walk.fetches >= maxSitemapFetches {
		return nil, nil
	}
	walk.seenSitemaps[sitemapURL] = true
	walk.fetches++

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "parsing sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, child := range locations(root, "sitemap") {
			found, err := s.collect(ctx, child, walk)
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				continue
			}
			urls = append(urls, found...)
		}
		return urls, nil
	}

	var urls []string
	for _, loc := range locations(root, "url") {
		if !walk.seenURLs[loc] {
			walk.seenURLs[loc] = true
			urls = append(urls, loc)
		}
	}
	return urls, nil
}

// locations extracts the trimmed <loc> text of each child element with the
// given tag.
func locations(root *etree.Element, tag string) []string {
	var locs []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			locs = append(locs, text)
		}
	}
	return locs
}

// get fetches a URL and returns the response body on 200 OK.
func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &leadscout.FetchError{URL: targetURL, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

// exists checks whether a URL answers 200 OK to a HEAD request.
func (s *SitemapService) exists(ctx context.Context, targetURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
