package goquery_test

import (
	"testing"

	"github.com/passivleads/leadscout/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractLinks(t *testing.T, html, pageURL string) []string {
	t.Helper()
	doc, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)
	links, err := goquery.NewLinkExtractor().ExtractLinks(doc, pageURL)
	require.NoError(t, err)
	return links
}

func TestLinkExtractor_resolves_relative_links(t *testing.T) {
	t.Parallel()

	html := `
		<a href="/contact">Contact</a>
		<a href="about">About</a>
		<a href="//example.com/team">Team</a>`
	links := extractLinks(t, html, "https://example.com/pages/index")

	assert.Equal(t, []string{
		"https://example.com/contact",
		"https://example.com/pages/about",
		"https://example.com/team",
	}, links)
}

func TestLinkExtractor_drops_external_and_non_web_links(t *testing.T) {
	t.Parallel()

	html := `
		<a href="https://example.com/ok">ok</a>
		<a href="https://other.com/x">external</a>
		<a href="mailto:info@example.com">mail</a>
		<a href="javascript:void(0)">js</a>
		<a href="tel:+411234567">phone</a>`
	links := extractLinks(t, html, "https://example.com")

	assert.Equal(t, []string{"https://example.com/ok"}, links)
}

func TestLinkExtractor_drops_resource_extensions(t *testing.T) {
	t.Parallel()

	html := `
		<a href="/brochure.pdf">pdf</a>
		<a href="/logo.png">png</a>
		<a href="/feed.xml">xml</a>
		<a href="/contact">contact</a>`
	links := extractLinks(t, html, "https://example.com")

	assert.Equal(t, []string{"https://example.com/contact"}, links)
}

func TestLinkExtractor_follows_anchors_only(t *testing.T) {
	t.Parallel()

	html := `
		<head>
			<link rel="next" href="/page2">
			<link rel="canonical" href="/canonical">
		</head>
		<body>
			<map><area href="/map-target"></map>
			<a href="/contact">Contact</a>
		</body>`
	links := extractLinks(t, html, "https://example.com")

	assert.Equal(t, []string{"https://example.com/contact"}, links)
}

func TestLinkExtractor_normalizes_and_deduplicates(t *testing.T) {
	t.Parallel()

	html := `
		<a href="/contact/">one</a>
		<a href="/contact?ref=footer">two</a>
		<a href="/contact#form">three</a>`
	links := extractLinks(t, html, "https://example.com")

	assert.Equal(t, []string{"https://example.com/contact"}, links)
}

func TestLinkExtractor_rejects_invalid_page_URL(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewParser().Parse(`<a href="/x">x</a>`)
	require.NoError(t, err)

	_, err = goquery.NewLinkExtractor().ExtractLinks(doc, "http://exa mple.com")
	assert.Error(t, err)
}
