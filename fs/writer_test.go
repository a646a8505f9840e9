package fs_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/rssfixer"
	"github.com/fwojciec/rssfixer/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Atomic Feed Output
// Feeds replace the target file in one step and failures surface as EWRITE.

func TestFileWriter_WritesFeed(t *testing.T) {
	t.Parallel()

	// Given a writer targeting a file in an empty directory
	path := filepath.Join(t.TempDir(), "feed.xml")
	w := fs.NewFileWriter(path)

	// When I write a feed
	err := w.WriteFeed(context.Background(), "<rss/>")

	// Then the file holds the feed
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(data))

	// And no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileWriter_ReplacesExistingFeed(t *testing.T) {
	t.Parallel()

	// Given an existing feed file
	path := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, os.WriteFile(path, []byte("<rss>old</rss>"), 0644))

	// When I write a different feed
	err := fs.NewFileWriter(path).WriteFeed(context.Background(), "<rss>new</rss>")

	// Then the file holds the new feed
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<rss>new</rss>", string(data))
}

func TestFileWriter_SkipsUnchangedFeed(t *testing.T) {
	t.Parallel()

	// Given an existing feed file with an old modification time
	path := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, os.WriteFile(path, []byte("<rss/>"), 0644))
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	// When I write the same feed again
	err := fs.NewFileWriter(path).WriteFeed(context.Background(), "<rss/>")

	// Then the file is left untouched
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))
}

func TestFileWriter_ReportsWriteFailure(t *testing.T) {
	t.Parallel()

	// Given a target whose parent is a regular file
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	path := filepath.Join(blocker, "feed.xml")

	// When I write a feed
	err := fs.NewFileWriter(path).WriteFeed(context.Background(), "<rss/>")

	// Then an EWRITE error names the path
	require.Error(t, err)
	assert.Equal(t, rssfixer.EWRITE, rssfixer.ErrorCode(err))
	assert.Equal(t, "unable to write to file "+path, rssfixer.ErrorMessage(err))
}

func TestFileWriter_CreatesMissingDirectories(t *testing.T) {
	t.Parallel()

	// Given a target inside a directory that does not exist yet
	path := filepath.Join(t.TempDir(), "feeds", "blog", "feed.xml")

	// When I write a feed
	err := fs.NewFileWriter(path).WriteFeed(context.Background(), "<rss/>")

	// Then the directory is created and holds the feed
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestStreamWriter_WriteFeed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := fs.NewStreamWriter(&buf).WriteFeed(context.Background(), "<rss/>")

	require.NoError(t, err)
	assert.Equal(t, "<rss/>\n", buf.String())
}
