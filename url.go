package leadscout

import (
	"net/url"
	"strings"
)

// importantKeywords marks URLs that are likely to carry contact information.
// A URL containing any of these substrings is scheduled ahead of normal
// pages. The list covers English and French site conventions.
var importantKeywords = []string{
	"contact", "politique", "privacy", "confidentialite",
	"mentions-legales", "legal", "cgv", "cgu", "about",
	"a-propos", "equipe", "team", "footer", "mentions",
}

// skipExtensions lists file extensions that never contain crawlable HTML.
var skipExtensions = []string{
	".pdf", ".jpg", ".jpeg", ".png", ".gif", ".svg",
	".zip", ".rar", ".exe", ".mp4", ".mp3", ".avi",
	".css", ".js", ".xml", ".json",
}

// Normalize returns the canonical form of a URL used for deduplication:
// query string and fragment are discarded and trailing slashes are stripped.
// Two URLs that normalize identically are treated as the same page.
// Malformed input is returned unchanged; normalization never fails a crawl.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return strings.TrimRight(u.String(), "/")
}

// IsAdmissible reports whether a URL is eligible for crawling: same host as
// the crawl origin, a web scheme (http, https, or protocol-relative), and
// not a known non-HTML resource. Unparseable input is never admissible.
func IsAdmissible(rawURL, origin string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	o, err := url.Parse(origin)
	if err != nil {
		return false
	}

	if u.Host != o.Host {
		return false
	}

	switch u.Scheme {
	case "http", "https", "":
	default:
		return false
	}

	lower := strings.ToLower(rawURL)
	for _, ext := range skipExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}

	return true
}

// IsImportant reports whether a URL looks like a contact, legal, or
// about-type page that should be visited early.
func IsImportant(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, keyword := range importantKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
