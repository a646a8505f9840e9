package mock

import (
	"context"

	"github.com/fwojciec/rssfixer"
)

var _ rssfixer.EntryHistory = (*EntryHistory)(nil)

// EntryHistory is a mock implementation of rssfixer.EntryHistory.
type EntryHistory struct {
	ObserveFn       func(ctx context.Context, feedID string, entries []rssfixer.Entry) ([]rssfixer.Item, error)
	FindSightingsFn func(ctx context.Context, feedID string) ([]*rssfixer.Sighting, error)
}

func (h *EntryHistory) Observe(ctx context.Context, feedID string, entries []rssfixer.Entry) ([]rssfixer.Item, error) {
	return h.ObserveFn(ctx, feedID, entries)
}

func (h *EntryHistory) FindSightings(ctx context.Context, feedID string) ([]*rssfixer.Sighting, error) {
	return h.FindSightingsFn(ctx, feedID)
}
