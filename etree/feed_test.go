package etree_test

import (
	"testing"
	"time"

	"github.com/fwojciec/rssfixer"
	"github.com/fwojciec/rssfixer/etree"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buildTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newBuilder() *etree.FeedBuilder {
	b := etree.NewFeedBuilder()
	b.Now = func() time.Time { return buildTime }
	return b
}

func mustEntry(t *testing.T, url, title, description string) rssfixer.Entry {
	t.Helper()
	e, err := rssfixer.NewEntry(url, title, description)
	require.NoError(t, err)
	return e
}

func TestFeedBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("builds RSS that parses back", func(t *testing.T) {
		t.Parallel()

		published := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
		feed := rssfixer.Feed{
			ID:      "https://example.com/blog",
			Title:   "Example & Co",
			BaseURL: "https://example.com",
			Format:  rssfixer.FormatRSS,
		}
		items := []rssfixer.Item{
			{Entry: mustEntry(t, "/post-1", "Post <1>", "About post 1"), Published: published},
			{Entry: mustEntry(t, "https://other.org/post-2", "Post 2", "")},
		}

		out, err := newBuilder().Build(feed, items)
		require.NoError(t, err)

		parsed, err := gofeed.NewParser().ParseString(out)
		require.NoError(t, err)

		assert.Equal(t, "rss", parsed.FeedType)
		assert.Equal(t, "2.0", parsed.FeedVersion)
		assert.Equal(t, "Example & Co", parsed.Title)
		assert.Equal(t, "RSS feed generated from the links at https://example.com/blog", parsed.Description)
		assert.Equal(t, "rssfixer", parsed.Generator)
		require.Len(t, parsed.Items, 2)

		assert.Equal(t, "Post <1>", parsed.Items[0].Title)
		assert.Equal(t, "https://example.com/post-1", parsed.Items[0].Link)
		assert.Equal(t, "https://example.com/post-1", parsed.Items[0].GUID)
		assert.Equal(t, "About post 1", parsed.Items[0].Description)
		require.NotNil(t, parsed.Items[0].PublishedParsed)
		assert.True(t, published.Equal(*parsed.Items[0].PublishedParsed))

		assert.Equal(t, "https://other.org/post-2", parsed.Items[1].Link)
		assert.Empty(t, parsed.Items[1].Description)
		assert.Nil(t, parsed.Items[1].PublishedParsed)
	})

	t.Run("builds Atom that parses back", func(t *testing.T) {
		t.Parallel()

		feed := rssfixer.Feed{
			ID:     "https://example.com/blog",
			Title:  "Example",
			Format: rssfixer.FormatAtom,
		}
		items := []rssfixer.Item{
			{Entry: mustEntry(t, "https://example.com/a", "A", "Summary A")},
			{Entry: mustEntry(t, "https://example.com/b", "B", "")},
		}

		out, err := newBuilder().Build(feed, items)
		require.NoError(t, err)

		parsed, err := gofeed.NewParser().ParseString(out)
		require.NoError(t, err)

		assert.Equal(t, "atom", parsed.FeedType)
		assert.Equal(t, "Example", parsed.Title)
		assert.Equal(t, "https://example.com/blog", parsed.Link)
		require.NotNil(t, parsed.UpdatedParsed)
		assert.True(t, buildTime.Equal(*parsed.UpdatedParsed))
		require.Len(t, parsed.Items, 2)

		assert.Equal(t, "https://example.com/a", parsed.Items[0].GUID)
		assert.Equal(t, "https://example.com/a", parsed.Items[0].Link)
		assert.Equal(t, "A", parsed.Items[0].Title)
		assert.Equal(t, "Summary A", parsed.Items[0].Description)
		assert.Equal(t, "Summary A", parsed.Items[0].Content)

		assert.Equal(t, "B", parsed.Items[1].Title)
		assert.Empty(t, parsed.Items[1].Description)
	})

	t.Run("preserves item order", func(t *testing.T) {
		t.Parallel()

		var items []rssfixer.Item
		for _, u := range []string{"/c", "/a", "/b"} {
			items = append(items, rssfixer.Item{Entry: mustEntry(t, u, u, "")})
		}

		out, err := newBuilder().Build(rssfixer.Feed{ID: "https://example.com", Title: "T"}, items)
		require.NoError(t, err)

		parsed, err := gofeed.NewParser().ParseString(out)
		require.NoError(t, err)
		require.Len(t, parsed.Items, 3)
		assert.Equal(t, "/c", parsed.Items[0].Link)
		assert.Equal(t, "/a", parsed.Items[1].Link)
		assert.Equal(t, "/b", parsed.Items[2].Link)
	})

	t.Run("starts with an xml declaration", func(t *testing.T) {
		t.Parallel()

		out, err := newBuilder().Build(rssfixer.Feed{ID: "https://example.com", Title: "T"}, nil)

		require.NoError(t, err)
		assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
		assert.Contains(t, out, "<channel>")
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := newBuilder().Build(rssfixer.Feed{ID: "https://example.com", Format: "json"}, nil)

		require.Error(t, err)
		assert.Equal(t, rssfixer.ECONFIG, rssfixer.ErrorCode(err))
	})

	t.Run("requires feed id", func(t *testing.T) {
		t.Parallel()

		_, err := newBuilder().Build(rssfixer.Feed{Title: "T"}, nil)

		require.Error(t, err)
		assert.Equal(t, rssfixer.EINVALID, rssfixer.ErrorCode(err))
	})
}
