// Package goquery provides HTML parsing and extraction implementations
// backed by PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/passivleads/leadscout"
	"golang.org/x/net/html"
)

// Ensure Parser implements leadscout.Parser at compile time.
var _ leadscout.Parser = (*Parser)(nil)

// Parser parses raw HTML into a leadscout.Document.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses HTML into a queryable Document.
func (p *Parser) Parse(rawHTML string) (leadscout.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, leadscout.Errorf(leadscout.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// Ensure Document implements leadscout.Document at compile time.
var _ leadscout.Document = (*Document)(nil)

// Document wraps a goquery document behind the typed query functions
// extractors depend on.
type Document struct {
	doc *goquery.Document
}

// Text returns the flattened text content of the page.
func (d *Document) Text() string {
	return d.doc.Text()
}

// Hrefs returns the href attribute of every element carrying one,
// in document order.
func (d *Document) Hrefs() []string {
	var hrefs []string
	d.doc.Find("[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// AnchorHrefs returns the href attribute of every anchor element,
// in document order.
func (d *Document) AnchorHrefs() []string {
	var hrefs []string
	d.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// AttrValues returns the values of the named attribute across all elements
// carrying it, in document order.
func (d *Document) AttrValues(attr string) []string {
	var values []string
	d.doc.Find("[" + attr + "]").Each(func(_ int, sel *goquery.Selection) {
		if v, ok := sel.Attr(attr); ok {
			values = append(values, v)
		}
	})
	return values
}

// ScriptBodies returns the text content of every inline script.
func (d *Document) ScriptBodies() []string {
	var bodies []string
	d.doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if body := sel.Text(); body != "" {
			bodies = append(bodies, body)
		}
	})
	return bodies
}

// Comments returns the text of every HTML comment node.
// goquery selections cannot address comment nodes, so this walks the
// underlying node tree directly.
func (d *Document) Comments() []string {
	var comments []string
	for _, root := range d.doc.Nodes {
		walkComments(root, &comments)
	}
	return comments
}

func walkComments(n *html.Node, out *[]string) {
	if n.Type == html.CommentNode {
		*out = append(*out, n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkComments(child, out)
	}
}
