// Package etree serializes feeds as RSS 2.0 or Atom 1.0 documents using
// github.com/beevik/etree.
package etree

import (
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/rssfixer"
)

// Generator is written into every feed.
const Generator = "rssfixer"

const (
	atomNamespace = "http://www.w3.org/2005/Atom"
	rssDocs       = "https://www.rssboard.org/rss-specification"
)

// Ensure FeedBuilder implements rssfixer.FeedBuilder at compile time.
var _ rssfixer.FeedBuilder = (*FeedBuilder)(nil)

// FeedBuilder renders feeds in the format named by rssfixer.Feed.Format.
type FeedBuilder struct {
	// Now returns the build time used when a feed has no Updated time.
	Now func() time.Time
}

// NewFeedBuilder creates a new FeedBuilder using the wall clock.
func NewFeedBuilder() *FeedBuilder {
	return &FeedBuilder{Now: time.Now}
}

// Build returns an indented XML document with items in the given order.
// Item links are resolved against feed.BaseURL.
func (b *FeedBuilder) Build(feed rssfixer.Feed, items []rssfixer.Item) (string, error) {
	if feed.ID == "" {
		return "", rssfixer.Errorf(rssfixer.EINVALID, "feed id required")
	}
	if feed.Updated.IsZero() {
		feed.Updated = b.Now().UTC()
	}
	if feed.Description == "" {
		feed.Description = rssfixer.DefaultDescription(feed.ID)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	switch feed.Format {
	case rssfixer.FormatAtom:
		buildAtom(doc, feed, items)
	case rssfixer.FormatRSS, "":
		buildRSS(doc, feed, items)
	default:
		return "", rssfixer.Errorf(rssfixer.ECONFIG, "unknown feed format %q", feed.Format)
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		return "", rssfixer.Errorf(rssfixer.EINTERNAL, "failed to serialize feed: %v", err)
	}
	return out, nil
}

func buildRSS(doc *etree.Document, feed rssfixer.Feed, items []rssfixer.Item) {
	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(feed.Title)
	channel.CreateElement("link").SetText(feed.ID)
	channel.CreateElement("description").SetText(feed.Description)
	channel.CreateElement("docs").SetText(rssDocs)
	channel.CreateElement("generator").SetText(Generator)
	channel.CreateElement("lastBuildDate").SetText(feed.Updated.Format(time.RFC1123Z))

	for _, item := range items {
		link := rssfixer.ResolveURL(feed.BaseURL, item.Entry.URL())

		el := channel.CreateElement("item")
		el.CreateElement("title").SetText(item.Entry.Title())
		el.CreateElement("link").SetText(link)
		guid := el.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "false")
		guid.SetText(link)
		if d := item.Entry.Description(); d != "" {
			el.CreateElement("description").SetText(d)
		}
		if !item.Published.IsZero() {
			el.CreateElement("pubDate").SetText(item.Published.UTC().Format(time.RFC1123Z))
		}
	}
}

func buildAtom(doc *etree.Document, feed rssfixer.Feed, items []rssfixer.Item) {
	root := doc.CreateElement("feed")
	root.CreateAttr("xmlns", atomNamespace)

	root.CreateElement("id").SetText(feed.ID)
	root.CreateElement("title").SetText(feed.Title)
	root.CreateElement("subtitle").SetText(feed.Description)
	link := root.CreateElement("link")
	link.CreateAttr("href", feed.ID)
	link.CreateAttr("rel", "alternate")
	root.CreateElement("updated").SetText(feed.Updated.Format(time.RFC3339))
	root.CreateElement("generator").SetText(Generator)

	for _, item := range items {
		href := rssfixer.ResolveURL(feed.BaseURL, item.Entry.URL())
		updated := feed.Updated
		if !item.Published.IsZero() {
			updated = item.Published.UTC()
		}

		entry := root.CreateElement("entry")
		entry.CreateElement("id").SetText(href)
		entry.CreateElement("title").SetText(item.Entry.Title())
		l := entry.CreateElement("link")
		l.CreateAttr("href", href)
		entry.CreateElement("updated").SetText(updated.Format(time.RFC3339))
		if d := item.Entry.Description(); d != "" {
			entry.CreateElement("summary").SetText(d)
			content := entry.CreateElement("content")
			content.CreateAttr("type", "text")
			content.SetText(d)
		}
	}
}
