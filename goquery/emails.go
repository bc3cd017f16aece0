package goquery

import (
	"regexp"
	"sort"
	"strings"

	"github.com/passivleads/leadscout"
)

// emailPattern matches email addresses as whole tokens.
var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// noiseSubstrings mark template and placeholder addresses that are almost
// never real contacts. Candidates containing any of these are discarded.
var noiseSubstrings = []string{
	"example.com", "example@", "test@", "noreply",
	"no-reply", "donotreply", "placeholder",
}

// Ensure EmailExtractor implements leadscout.EmailExtractor at compile time.
var _ leadscout.EmailExtractor = (*EmailExtractor)(nil)

// EmailExtractor finds email addresses across five independent page sources:
// visible text, mailto links, data-email attributes, inline scripts, and
// HTML comments.
type EmailExtractor struct{}

// NewEmailExtractor creates a new EmailExtractor.
func NewEmailExtractor() *EmailExtractor {
	return &EmailExtractor{}
}

// Extract returns the union of emails from all sources, lowercased,
// noise-filtered, deduplicated, and sorted.
func (e *EmailExtractor) Extract(doc leadscout.Document) []string {
	found := make(map[string]struct{})

	add := func(email string) {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			return
		}
		found[email] = struct{}{}
	}

	scan := func(text string) {
		for _, match := range emailPattern.FindAllString(text, -1) {
			add(match)
		}
	}

	// Visible page text.
	scan(doc.Text())

	// mailto: links. The address is everything before an optional
	// ?subject=... suffix.
	for _, href := range doc.Hrefs() {
		trimmed := strings.TrimSpace(href)
		if len(trimmed) < len("mailto:") || !strings.EqualFold(trimmed[:len("mailto:")], "mailto:") {
			continue
		}
		addr := trimmed[len("mailto:"):]
		if idx := strings.Index(addr, "?"); idx != -1 {
			addr = addr[:idx]
		}
		if strings.Contains(addr, "@") {
			add(addr)
		}
	}

	// Obfuscation-workaround data attributes.
	for _, v := range doc.AttrValues("data-email") {
		if strings.Contains(v, "@") {
			add(v)
		}
	}

	// Inline scripts often embed addresses for contact widgets.
	for _, body := range doc.ScriptBodies() {
		scan(body)
	}

	// Commented-out markup still carries addresses surprisingly often.
	for _, comment := range doc.Comments() {
		if strings.Contains(comment, "@") {
			scan(comment)
		}
	}

	emails := make([]string, 0, len(found))
	for email := range found {
		if isNoise(email) {
			continue
		}
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

// isNoise reports whether a lowercase candidate matches the placeholder
// blacklist.
func isNoise(email string) bool {
	for _, noise := range noiseSubstrings {
		if strings.Contains(email, noise) {
			return true
		}
	}
	return false
}
