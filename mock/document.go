package mock

import "github.com/passivleads/leadscout"

var _ leadscout.Document = (*Document)(nil)

// Document is a mock implementation of leadscout.Document.
type Document struct {
	TextFn         func() string
	HrefsFn        func() []string
	AnchorHrefsFn  func() []string
	AttrValuesFn   func(attr string) []string
	ScriptBodiesFn func() []string
	CommentsFn     func() []string
}

func (d *Document) Text() string {
	if d.TextFn == nil {
		return ""
	}
	return d.TextFn()
}

func (d *Document) Hrefs() []string {
	if d.HrefsFn == nil {
		return nil
	}
	return d.HrefsFn()
}

func (d *Document) AnchorHrefs() []string {
	if d.AnchorHrefsFn == nil {
		return nil
	}
	return d.AnchorHrefsFn()
}

func (d *Document) AttrValues(attr string) []string {
	if d.AttrValuesFn == nil {
		return nil
	}
	return d.AttrValuesFn(attr)
}

func (d *Document) ScriptBodies() []string {
	if d.ScriptBodiesFn == nil {
		return nil
	}
	return d.ScriptBodiesFn()
}

func (d *Document) Comments() []string {
	if d.CommentsFn == nil {
		return nil
	}
	return d.CommentsFn()
}

var _ leadscout.Parser = (*Parser)(nil)

// Parser is a mock implementation of leadscout.Parser.
type Parser struct {
	ParseFn func(html string) (leadscout.Document, error)
}

func (p *Parser) Parse(html string) (leadscout.Document, error) {
	return p.ParseFn(html)
}
