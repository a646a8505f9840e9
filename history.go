package rssfixer

import (
	"context"
	"time"
)

// Sighting records when an entry was first and last seen in a feed.
type Sighting struct {
	ID        string    `json:"id"`
	FeedID    string    `json:"feedId"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// EntryHistory remembers entries across runs so that every item keeps the
// date on which it first appeared.
type EntryHistory interface {
	// Observe records entries for feedID and returns them as items dated
	// with their first sighting, in the order given.
	Observe(ctx context.Context, feedID string, entries []Entry) ([]Item, error)

	// FindSightings returns every recorded sighting for feedID, oldest first.
	FindSightings(ctx context.Context, feedID string) ([]*Sighting, error)
}
