package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rssfixer"
)

// Ensure ListExtractor implements rssfixer.Extractor at compile time.
var _ rssfixer.Extractor = (*ListExtractor)(nil)

// excludedURLParts drops taxonomy and author index pages that blogs tend
// to list next to their posts.
var excludedURLParts = []string{"/category/", "/author/"}

// ListExtractor collects the first link of every item of every list that
// carries no class attribute. Styled lists are usually navigation.
type ListExtractor struct{}

// NewListExtractor creates a new ListExtractor.
func NewListExtractor(rssfixer.ListConfig) *ListExtractor {
	return &ListExtractor{}
}

// Mode returns rssfixer.ModeList.
func (e *ListExtractor) Mode() rssfixer.Mode {
	return rssfixer.ModeList
}

// Extract returns one entry per list item link. The link text serves as
// both title and description.
func (e *ListExtractor) Extract(html string) ([]rssfixer.Entry, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}
	return e.ExtractDocument(doc)
}

// ExtractDocument is like Extract but works on an already parsed document.
func (e *ListExtractor) ExtractDocument(doc *goquery.Document) ([]rssfixer.Entry, error) {
	seen := rssfixer.NewKeySet()
	var entries []rssfixer.Entry

	doc.Find("ul:not([class])").Find("li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a").First()
		if link.Length() == 0 {
			return
		}
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		title := strings.TrimSpace(link.Text())
		if strings.TrimSpace(href) == "" || title == "" {
			return
		}
		if isExcluded(href) {
			return
		}

		entry, err := rssfixer.NewEntry(href, title, title)
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

func isExcluded(url string) bool {
	for _, part := range excludedURLParts {
		if strings.Contains(url, part) {
			return true
		}
	}
	return false
}
