// Package leadscout provides a single-domain web crawler that discovers
// contact email addresses. It crawls pages reachable from a base URL,
// prioritizing pages likely to carry contact information (contact, legal,
// about), and extracts emails from page text, mailto links, data attributes,
// inline scripts, and HTML comments.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package leadscout
