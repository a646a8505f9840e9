package mock

import (
	"context"

	"github.com/fwojciec/rssfixer"
)

var _ rssfixer.FeedWriter = (*FeedWriter)(nil)

// FeedWriter is a mock implementation of rssfixer.FeedWriter.
type FeedWriter struct {
	WriteFeedFn func(ctx context.Context, xml string) error
}

func (w *FeedWriter) WriteFeed(ctx context.Context, xml string) error {
	return w.WriteFeedFn(ctx, xml)
}

var _ rssfixer.FeedBuilder = (*FeedBuilder)(nil)

// FeedBuilder is a mock implementation of rssfixer.FeedBuilder.
type FeedBuilder struct {
	BuildFn func(feed rssfixer.Feed, items []rssfixer.Item) (string, error)
}

func (b *FeedBuilder) Build(feed rssfixer.Feed, items []rssfixer.Item) (string, error) {
	return b.BuildFn(feed, items)
}
