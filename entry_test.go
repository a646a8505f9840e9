package rssfixer_test

import (
	"testing"

	"github.com/fwojciec/rssfixer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Parallel()

	t.Run("trims every field", func(t *testing.T) {
		t.Parallel()

		e, err := rssfixer.NewEntry("  https://example.com/a \n", "\tTitle A ", "  some text  ")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", e.URL())
		assert.Equal(t, "Title A", e.Title())
		assert.Equal(t, "some text", e.Description())
	})

	t.Run("allows empty description", func(t *testing.T) {
		t.Parallel()

		e, err := rssfixer.NewEntry("https://example.com/a", "Title", "")

		require.NoError(t, err)
		assert.Empty(t, e.Description())
	})

	t.Run("rejects blank url", func(t *testing.T) {
		t.Parallel()

		_, err := rssfixer.NewEntry("   ", "Title", "")

		require.Error(t, err)
		assert.Equal(t, rssfixer.EINVALID, rssfixer.ErrorCode(err))
	})

	t.Run("rejects blank title", func(t *testing.T) {
		t.Parallel()

		_, err := rssfixer.NewEntry("https://example.com/a", " \n ", "")

		require.Error(t, err)
		assert.Equal(t, rssfixer.EINVALID, rssfixer.ErrorCode(err))
	})
}

func TestKeySet_Add(t *testing.T) {
	t.Parallel()

	s := rssfixer.NewKeySet()

	assert.True(t, s.Add("a"))
	assert.True(t, s.Add("b"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Add(""))
	assert.False(t, s.Add(""))
	assert.Equal(t, 3, s.Len())
}

func TestRequireEntries(t *testing.T) {
	t.Parallel()

	t.Run("returns entries unchanged", func(t *testing.T) {
		t.Parallel()

		e, err := rssfixer.NewEntry("https://example.com/a", "A", "")
		require.NoError(t, err)

		got, err := rssfixer.RequireEntries([]rssfixer.Entry{e})

		require.NoError(t, err)
		assert.Equal(t, []rssfixer.Entry{e}, got)
	})

	t.Run("rejects empty list", func(t *testing.T) {
		t.Parallel()

		_, err := rssfixer.RequireEntries(nil)

		require.Error(t, err)
		assert.Equal(t, rssfixer.ENOLINKS, rssfixer.ErrorCode(err))
		assert.Equal(t, "no links found", rssfixer.ErrorMessage(err))
	})
}
