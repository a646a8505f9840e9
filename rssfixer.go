// Package rssfixer turns web pages that lack a syndication feed into RSS or
// Atom feeds. It extracts a list of entries (url, title, description) from
// HTML or from JSON embedded in the page using one of four strategies and
// hands them to a feed builder.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, etree/, sqlite/).
package rssfixer
