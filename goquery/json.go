package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rssfixer"
)

// Ensure JSONExtractor implements rssfixer.Extractor at compile time.
var _ rssfixer.Extractor = (*JSONExtractor)(nil)

// JSONExtractor reads entries from JSON embedded in
// <script type="application/json"> blocks, as emitted by many
// client-rendered sites.
type JSONExtractor struct {
	cfg rssfixer.JSONConfig
}

// NewJSONExtractor creates a new JSONExtractor from cfg. It returns ECONFIG
// when the entries, url or title key is missing.
func NewJSONExtractor(cfg rssfixer.JSONConfig) (*JSONExtractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &JSONExtractor{cfg: cfg}, nil
}

// Mode returns rssfixer.ModeJSON.
func (e *JSONExtractor) Mode() rssfixer.Mode {
	return rssfixer.ModeJSON
}

// Extract returns the entries of the first embedded entries list.
func (e *JSONExtractor) Extract(html string) ([]rssfixer.Entry, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc)
}

// ExtractDocument is like Extract but works on an already parsed document.
//
// A list item missing the url or title key aborts extraction with EJSON,
// since it means the keys are configured wrong for the page. Items whose
// url or title is present but empty are skipped.
func (e *JSONExtractor) ExtractDocument(doc *goquery.Document) ([]rssfixer.Entry, error) {
	list, ok := e.findEntries(doc)
	if !ok {
		return nil, rssfixer.Errorf(rssfixer.EJSON, "unable to find JSON object with entries")
	}

	seen := rssfixer.NewKeySet()
	var entries []rssfixer.Entry

	for _, item := range list {
		obj, ok := item.(Object)
		if !ok {
			continue
		}

		rawURL, ok := obj.Get(e.cfg.URL)
		if !ok {
			return nil, rssfixer.Errorf(rssfixer.EJSON, "required JSON key missing: %q", e.cfg.URL)
		}
		rawTitle, ok := obj.Get(e.cfg.Title)
		if !ok {
			return nil, rssfixer.Errorf(rssfixer.EJSON, "required JSON key missing: %q", e.cfg.Title)
		}

		url, title := scalarText(rawURL), scalarText(rawTitle)
		if url == "" || title == "" {
			continue
		}

		var description string
		if e.cfg.Description != "" {
			if raw, ok := obj.Get(e.cfg.Description); ok {
				description = scalarText(raw)
			}
		}

		entry, err := rssfixer.NewEntry(url, title, description)
		if err != nil {
			continue
		}
		if !seen.Add(entry.URL()) {
			continue
		}
		entries = append(entries, entry)
	}

	return rssfixer.RequireEntries(entries)
}

// findEntries scans the embedded JSON blocks in document order and returns
// the first entries list found. Empty and malformed blocks are skipped.
func (e *JSONExtractor) findEntries(doc *goquery.Document) (Array, bool) {
	var (
		found Array
		ok    bool
	)
	doc.Find(`script[type="application/json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := strings.TrimSpace(script.Text())
		if text == "" {
			return true
		}
		v, err := DecodeJSON(text)
		if err != nil {
			return true
		}
		found, ok = FindList(v, e.cfg.Entries)
		return !ok
	})
	return found, ok
}

// scalarText renders a JSON scalar as entry text. Falsy values (null,
// false, zero, empty string) and containers yield "".
func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case Number:
		if isZero(t) {
			return ""
		}
		return string(t)
	case bool:
		if t {
			return "true"
		}
	}
	return ""
}

// isZero reports whether a number literal denotes zero, e.g. "0", "-0.0"
// or "0e10".
func isZero(n Number) bool {
	s := strings.TrimPrefix(string(n), "-")
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(s, "0.") == ""
}
