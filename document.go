package leadscout

// Document is a parsed HTML page queried through a small set of typed
// accessors. Extractors depend only on this interface, not on a specific
// parser's object model.
type Document interface {
	// Text returns the flattened text content of the page.
	Text() string

	// Hrefs returns the href attribute of every element carrying one,
	// in document order.
	Hrefs() []string

	// AnchorHrefs returns the href attribute of every anchor element,
	// in document order. Link discovery follows anchors only; other
	// href carriers (link, area, base) are not crawl candidates.
	AnchorHrefs() []string

	// AttrValues returns the values of the named attribute across all
	// elements carrying it, in document order.
	AttrValues(attr string) []string

	// ScriptBodies returns the text content of every inline script.
	ScriptBodies() []string

	// Comments returns the text of every HTML comment node.
	Comments() []string
}

// Parser parses raw HTML into a Document.
type Parser interface {
	Parse(html string) (Document, error)
}
