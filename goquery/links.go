package goquery

import (
	"net/url"

	"github.com/passivleads/leadscout"
)

// Ensure LinkExtractor implements leadscout.LinkExtractor at compile time.
var _ leadscout.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor resolves page anchors into admissible crawl candidates.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks resolves every anchor href against pageURL, normalizes it,
// and keeps it iff admissible for the page's domain. The result is
// deduplicated and preserves document order.
func (e *LinkExtractor) ExtractLinks(doc leadscout.Document, pageURL string) ([]string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "invalid page URL: %v", err)
	}
	origin := base.Scheme + "://" + base.Host

	seen := make(map[string]struct{})
	var links []string

	for _, href := range doc.AnchorHrefs() {
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref).String()
		normalized := leadscout.Normalize(resolved)

		if !leadscout.IsAdmissible(normalized, origin) {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		links = append(links, normalized)
	}

	return links, nil
}
