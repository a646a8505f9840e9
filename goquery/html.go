package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rssfixer"
)

// Ensure HTMLExtractor implements rssfixer.Extractor at compile time.
var _ rssfixer.Extractor = (*HTMLExtractor)(nil)

// HTMLExtractor collects entries from repeated container elements such as
// <article>, reading the link, title and description inside each one.
type HTMLExtractor struct {
	cfg              rssfixer.HTMLConfig
	entries          goquery.Matcher
	url              goquery.Matcher
	title            goquery.Matcher
	description      goquery.Matcher
	titleClass       *regexp.Regexp
	descriptionClass *regexp.Regexp
	titleFilter      *regexp.Regexp
}

// NewHTMLExtractor creates a new HTMLExtractor from cfg. It returns ECONFIG
// when cfg is missing a selector or holds a selector or pattern that does
// not compile.
func NewHTMLExtractor(cfg rssfixer.HTMLConfig) (*HTMLExtractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &HTMLExtractor{cfg: cfg}
	var err error
	if e.entries, err = compileSelector("html entries", cfg.Entries); err != nil {
		return nil, err
	}
	if e.url, err = compileSelector("html url", cfg.URL); err != nil {
		return nil, err
	}
	if e.title, err = compileSelector("html title", cfg.Title); err != nil {
		return nil, err
	}
	if cfg.Description != "" {
		if e.description, err = compileSelector("html description", cfg.Description); err != nil {
			return nil, err
		}
	}
	if e.titleClass, err = compileOptional(cfg.TitleClass); err != nil {
		return nil, err
	}
	if e.descriptionClass, err = compileOptional(cfg.DescriptionClass); err != nil {
		return nil, err
	}
	if e.titleFilter, err = compileOptional(cfg.TitleFilter); err != nil {
		return nil, err
	}
	return e, nil
}

// Mode returns rssfixer.ModeHTML.
func (e *HTMLExtractor) Mode() rssfixer.Mode {
	return rssfixer.ModeHTML
}

// Extract returns one entry per container that yields both a link and a
// title. Containers missing either are skipped.
func (e *HTMLExtractor) Extract(html string) ([]rssfixer.Entry, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc)
}

// ExtractDocument is like Extract but works on an already parsed document.
func (e *HTMLExtractor) ExtractDocument(doc *goquery.Document) ([]rssfixer.Entry, error) {
	seen := rssfixer.NewKeySet()
	var entries []rssfixer.Entry

	containers := doc.FindMatcher(e.entries)
	if e.cfg.EntriesClass != "" {
		containers = containers.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return hasClass(s, e.cfg.EntriesClass)
		})
	}

	containers.Each(func(_ int, container *goquery.Selection) {
		// Only the first url element counts, even if a later one has an href.
		href, ok := container.FindMatcher(e.url).First().Attr("href")
		if !ok || href == "" {
			return
		}

		title := findText(container, e.title, e.titleClass)
		if title == "" {
			return
		}
		if e.titleFilter != nil && !e.titleFilter.MatchString(title) {
			return
		}

		var description string
		if e.description != nil {
			description = findText(container, e.description, e.descriptionClass)
		}

		entry, err := rssfixer.NewEntry(href, title, description)
		if err != nil {
			return
		}
		if !seen.Add(entry.URL()) {
			return
		}
		entries = append(entries, entry)
	})

	return rssfixer.RequireEntries(entries)
}
