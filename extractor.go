package leadscout

// EmailExtractor finds contact email addresses in a parsed page.
type EmailExtractor interface {
	// Extract returns the deduplicated, lowercase, noise-filtered set of
	// syntactically valid emails found in the document, sorted
	// lexicographically. Sources scanned: visible text, mailto links,
	// data-email attributes, inline scripts, and HTML comments.
	Extract(doc Document) []string
}

// LinkExtractor finds crawlable links in a parsed page.
type LinkExtractor interface {
	// ExtractLinks resolves every anchor href against pageURL, normalizes
	// it, and keeps it iff admissible for the crawl's domain. The result
	// is deduplicated and follows document order.
	ExtractLinks(doc Document, pageURL string) ([]string, error)
}
