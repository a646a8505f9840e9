// Package goquery implements the extraction strategies and the document
// filter over HTML parsed with github.com/PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/rssfixer"
)

// Parse builds a queryable document from raw HTML. Malformed markup is
// repaired the way browsers do it; only reader failures are errors.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, rssfixer.Errorf(rssfixer.EHTML, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// hasClass reports whether the class attribute equals class or lists it
// as one of its space-separated values.
func hasClass(sel *goquery.Selection, class string) bool {
	attr, ok := sel.Attr("class")
	if !ok {
		return false
	}
	if attr == class {
		return true
	}
	for _, c := range strings.Fields(attr) {
		if c == class {
			return true
		}
	}
	return false
}

// classMatches reports whether re finds a match in the class attribute as
// a whole or in any one of its values.
func classMatches(sel *goquery.Selection, re *regexp.Regexp) bool {
	attr, ok := sel.Attr("class")
	if !ok {
		return false
	}
	if re.MatchString(attr) {
		return true
	}
	for _, c := range strings.Fields(attr) {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}

// findText returns the trimmed text of the first descendant of scope that
// matches selector and, when classRe is non-nil, whose class matches
// classRe. It returns "" when nothing matches.
func findText(scope *goquery.Selection, selector goquery.Matcher, classRe *regexp.Regexp) string {
	found := scope.FindMatcher(selector)
	if classRe != nil {
		found = found.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return classMatches(s, classRe)
		})
	}
	if found.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(found.First().Text())
}

// compileOptional compiles pattern, returning nil for an empty pattern.
func compileOptional(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, rssfixer.Errorf(rssfixer.ECONFIG, "invalid pattern %q: %v", pattern, err)
	}
	return re, nil
}

// compileSelector compiles a CSS selector, or a comma-separated group of
// them. name identifies the option in the ECONFIG error.
func compileSelector(name, selector string) (goquery.Matcher, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, rssfixer.Errorf(rssfixer.ECONFIG, "invalid %s selector %q: %v", name, selector, err)
	}
	return sel, nil
}
