package rssfixer

import (
	"context"
	"strings"
	"time"
)

// FeedFormat names an output syndication format.
type FeedFormat string

// Supported feed formats.
const (
	FormatRSS  FeedFormat = "rss"
	FormatAtom FeedFormat = "atom"
)

// String returns the display name of the format.
func (f FeedFormat) String() string {
	if f == FormatAtom {
		return "Atom"
	}
	return "RSS"
}

// Feed holds the channel-level metadata of a generated feed.
type Feed struct {
	// ID is the address of the page the feed was generated from.
	ID          string
	Title       string
	Description string
	// BaseURL is prefixed to entry links that are not absolute.
	BaseURL string
	Format  FeedFormat
	Updated time.Time
}

// DefaultDescription returns the channel description used when none is set.
func DefaultDescription(pageURL string) string {
	return "RSS feed generated from the links at " + pageURL
}

// Item is an Entry placed in a feed. Published is zero when the entry has
// no known date.
type Item struct {
	Entry     Entry
	Published time.Time
}

// Items wraps entries as undated items, preserving order.
func Items(entries []Entry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

// LatestPublished returns the newest Published time among items, or the
// zero time when no item is dated.
func LatestPublished(items []Item) time.Time {
	var latest time.Time
	for _, it := range items {
		if it.Published.After(latest) {
			latest = it.Published
		}
	}
	return latest
}

// ResolveURL returns u prefixed with base when base is set and u is not an
// absolute http(s) link. The two are concatenated as-is.
func ResolveURL(base, u string) string {
	if base != "" && !strings.HasPrefix(u, "http") {
		return base + u
	}
	return u
}

// FeedBuilder serializes a feed and its items.
type FeedBuilder interface {
	// Build returns the XML document for feed with items in the given order.
	Build(feed Feed, items []Item) (string, error)
}

// FeedWriter persists a serialized feed.
type FeedWriter interface {
	// WriteFeed stores the XML document. Failures are reported as EWRITE.
	WriteFeed(ctx context.Context, xml string) error
}
