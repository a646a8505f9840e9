package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/rssfixer"
	nethtml "golang.org/x/net/html"
)

// Ensure Filter implements rssfixer.DocumentFilter at compile time.
var _ rssfixer.DocumentFilter = (*Filter)(nil)

// Filter narrows a page to the elements matching a tag and class so that
// strategies only see the relevant part of a busy page.
type Filter struct{}

// NewFilter creates a new Filter.
func NewFilter() *Filter {
	return &Filter{}
}

// Filter returns the concatenated markup of every element matching tag
// whose class attribute contains class. An empty class matches any element.
func (f *Filter) Filter(html, tag, class string) (string, error) {
	doc, err := Parse(html)
	if err != nil {
		return "", err
	}

	matched := doc.Find(tag)
	if class != "" {
		matched = matched.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return hasClass(s, class)
		})
	}
	if matched.Length() == 0 {
		return "", rssfixer.Errorf(rssfixer.EHTML, "no entries found for filter %s:%s", tag, class)
	}

	var b strings.Builder
	for _, n := range matched.Nodes {
		if err := nethtml.Render(&b, n); err != nil {
			return "", rssfixer.Errorf(rssfixer.EHTML, "failed to render filtered HTML: %v", err)
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
