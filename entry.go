package rssfixer

import "strings"

// Entry is one item destined for the generated feed. Entries are immutable
// once constructed; use NewEntry to build one.
type Entry struct {
	url         string
	title       string
	description string
}

// NewEntry returns an Entry with surrounding whitespace trimmed from every
// field. It returns EINVALID when url or title is empty after trimming.
func NewEntry(url, title, description string) (Entry, error) {
	e := Entry{
		url:         strings.TrimSpace(url),
		title:       strings.TrimSpace(title),
		description: strings.TrimSpace(description),
	}
	if e.url == "" {
		return Entry{}, Errorf(EINVALID, "entry url required")
	}
	if e.title == "" {
		return Entry{}, Errorf(EINVALID, "entry title required")
	}
	return e, nil
}

// URL returns the entry link as found in the page.
func (e Entry) URL() string { return e.url }

// Title returns the entry title.
func (e Entry) Title() string { return e.title }

// Description returns the entry description, possibly empty.
func (e Entry) Description() string { return e.description }
