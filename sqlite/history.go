package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/rssfixer"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ rssfixer.EntryHistory = (*EntryHistory)(nil)

// EntryHistory implements rssfixer.EntryHistory using SQLite.
type EntryHistory struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewEntryHistory creates a new EntryHistory.
func NewEntryHistory(db *DB) *EntryHistory {
	return &EntryHistory{db: db, Now: time.Now}
}

// Observe records entries for feedID and returns them dated with their
// first sighting. Entries new in this run are dated one second apart in
// page order, newest first, so readers that sort by date keep the order of
// the page.
func (h *EntryHistory) Observe(ctx context.Context, feedID string, entries []rssfixer.Entry) ([]rssfixer.Item, error) {
	if feedID == "" {
		return nil, rssfixer.Errorf(rssfixer.EINVALID, "feed id required")
	}

	now := h.Now().UTC().Truncate(time.Second)

	tx, err := h.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	items := make([]rssfixer.Item, 0, len(entries))
	for i, e := range entries {
		candidate := now.Add(-time.Duration(i) * time.Second)

		var firstSeen string
		err := tx.QueryRowContext(ctx, `
			INSERT INTO sightings (id, feed_id, url, title, first_seen, last_seen)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (feed_id, url) DO UPDATE
			SET title = excluded.title, last_seen = excluded.last_seen
			RETURNING first_seen
		`, uuid.New().String(), feedID, e.URL(), e.Title(), formatTime(candidate), formatTime(now)).Scan(&firstSeen)
		if err != nil {
			return nil, err
		}

		published, err := parseTime(firstSeen, "first_seen")
		if err != nil {
			return nil, err
		}
		items = append(items, rssfixer.Item{Entry: e, Published: published})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindSightings returns every recorded sighting for feedID, oldest first.
func (h *EntryHistory) FindSightings(ctx context.Context, feedID string) ([]*rssfixer.Sighting, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, feed_id, url, title, first_seen, last_seen
		FROM sightings
		WHERE feed_id = ?
		ORDER BY first_seen ASC, url ASC
	`, feedID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sightings []*rssfixer.Sighting
	for rows.Next() {
		var s rssfixer.Sighting
		var firstSeen, lastSeen string

		if err := rows.Scan(&s.ID, &s.FeedID, &s.URL, &s.Title, &firstSeen, &lastSeen); err != nil {
			return nil, err
		}

		if s.FirstSeen, err = parseTime(firstSeen, "first_seen"); err != nil {
			return nil, err
		}
		if s.LastSeen, err = parseTime(lastSeen, "last_seen"); err != nil {
			return nil, err
		}

		sightings = append(sightings, &s)
	}

	return sightings, rows.Err()
}
