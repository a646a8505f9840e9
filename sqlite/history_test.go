package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/rssfixer"
	"github.com/fwojciec/rssfixer/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entries(t *testing.T, urls ...string) []rssfixer.Entry {
	t.Helper()
	var out []rssfixer.Entry
	for _, u := range urls {
		e, err := rssfixer.NewEntry(u, "Title "+u, "")
		require.NoError(t, err)
		out = append(out, e)
	}
	return out
}

func TestEntryHistory_Observe(t *testing.T) {
	t.Parallel()

	t.Run("dates new entries in page order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		history := sqlite.NewEntryHistory(db)
		now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		history.Now = func() time.Time { return now }

		items, err := history.Observe(context.Background(), "https://example.com", entries(t, "/a", "/b"))

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "/a", items[0].Entry.URL())
		assert.True(t, now.Equal(items[0].Published))
		assert.True(t, now.Add(-time.Second).Equal(items[1].Published))
	})

	t.Run("keeps first sighting across runs", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		history := sqlite.NewEntryHistory(db)
		ctx := context.Background()
		first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		second := first.Add(24 * time.Hour)

		history.Now = func() time.Time { return first }
		_, err := history.Observe(ctx, "feed", entries(t, "/a"))
		require.NoError(t, err)

		history.Now = func() time.Time { return second }
		items, err := history.Observe(ctx, "feed", entries(t, "/new", "/a"))
		require.NoError(t, err)

		require.Len(t, items, 2)
		assert.Equal(t, "/new", items[0].Entry.URL())
		assert.True(t, second.Equal(items[0].Published))
		assert.Equal(t, "/a", items[1].Entry.URL())
		assert.True(t, first.Equal(items[1].Published))

		sightings, err := history.FindSightings(ctx, "feed")
		require.NoError(t, err)
		require.Len(t, sightings, 2)
		assert.Equal(t, "/a", sightings[0].URL)
		assert.NotEmpty(t, sightings[0].ID)
		assert.True(t, second.Equal(sightings[0].LastSeen))
	})

	t.Run("separates feeds", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		history := sqlite.NewEntryHistory(db)
		ctx := context.Background()

		_, err := history.Observe(ctx, "one", entries(t, "/a"))
		require.NoError(t, err)
		_, err = history.Observe(ctx, "two", entries(t, "/a", "/b"))
		require.NoError(t, err)

		one, err := history.FindSightings(ctx, "one")
		require.NoError(t, err)
		assert.Len(t, one, 1)

		two, err := history.FindSightings(ctx, "two")
		require.NoError(t, err)
		assert.Len(t, two, 2)
	})

	t.Run("rejects empty feed id", func(t *testing.T) {
		t.Parallel()

		history := sqlite.NewEntryHistory(setupTestDB(t))

		_, err := history.Observe(context.Background(), "", entries(t, "/a"))

		require.Error(t, err)
		assert.Equal(t, rssfixer.EINVALID, rssfixer.ErrorCode(err))
	})
}

func TestEntryHistory_FindSightings_Empty(t *testing.T) {
	t.Parallel()

	history := sqlite.NewEntryHistory(setupTestDB(t))

	sightings, err := history.FindSightings(context.Background(), "unknown")

	require.NoError(t, err)
	assert.Empty(t, sightings)
}
