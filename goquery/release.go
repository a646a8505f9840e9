package goquery

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rssfixer"
)

// Ensure ReleaseExtractor implements rssfixer.Extractor at compile time.
var _ rssfixer.Extractor = (*ReleaseExtractor)(nil)

// ReleaseExtractor turns release headings into entries for pages that list
// versions without linking to them. Each title gets a synthetic link that
// stays the same for as long as the title does.
type ReleaseExtractor struct {
	cfg     rssfixer.ReleaseConfig
	entries goquery.Matcher
}

// NewReleaseExtractor creates a new ReleaseExtractor from cfg. It returns
// ECONFIG when the base URL or the entries selector is missing, or when the
// selector does not compile.
func NewReleaseExtractor(cfg rssfixer.ReleaseConfig) (*ReleaseExtractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	entries, err := compileSelector("release entries", cfg.Entries)
	if err != nil {
		return nil, err
	}
	return &ReleaseExtractor{cfg: cfg, entries: entries}, nil
}

// Mode returns rssfixer.ModeRelease.
func (e *ReleaseExtractor) Mode() rssfixer.Mode {
	return rssfixer.ModeRelease
}

// Extract returns one entry per distinct release title.
func (e *ReleaseExtractor) Extract(html string) ([]rssfixer.Entry, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc)
}

// ExtractDocument is like Extract but works on an already parsed document.
func (e *ReleaseExtractor) ExtractDocument(doc *goquery.Document) ([]rssfixer.Entry, error) {
	seen := rssfixer.NewKeySet()
	var entries []rssfixer.Entry

	doc.FindMatcher(e.entries).Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Text())
		if title == "" || !seen.Add(title) {
			return
		}
		entry, err := rssfixer.NewEntry(ReleaseURL(e.cfg.URL, title), title, "")
		if err != nil {
			return
		}
		entries = append(entries, entry)
	})

	return rssfixer.RequireEntries(entries)
}

// ReleaseURL returns the synthetic link for a release title: base followed
// by "?" and the hex SHA-256 digest of the title.
func ReleaseURL(base, title string) string {
	sum := sha256.Sum256([]byte(title))
	return base + "?" + hex.EncodeToString(sum[:])
}
