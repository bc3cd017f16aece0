package mock

import "github.com/passivleads/leadscout"

var _ leadscout.EmailExtractor = (*EmailExtractor)(nil)

// EmailExtractor is a mock implementation of leadscout.EmailExtractor.
type EmailExtractor struct {
	ExtractFn func(doc leadscout.Document) []string
}

func (e *EmailExtractor) Extract(doc leadscout.Document) []string {
	return e.ExtractFn(doc)
}

var _ leadscout.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of leadscout.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(doc leadscout.Document, pageURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(doc leadscout.Document, pageURL string) ([]string, error) {
	return e.ExtractLinksFn(doc, pageURL)
}
