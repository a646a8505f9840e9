// Package fs persists generated feeds to the file system.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/rssfixer"
)

// Ensure FileWriter implements rssfixer.FeedWriter at compile time.
var _ rssfixer.FeedWriter = (*FileWriter)(nil)

// FileWriter writes a feed to a single file with atomic replace semantics.
// The feed is written to a temporary file in the target directory and then
// renamed over the target, so readers never see a partial feed.
type FileWriter struct {
	path string
}

// NewFileWriter creates a new FileWriter for path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// Path returns the target file path.
func (w *FileWriter) Path() string {
	return w.path
}

// WriteFeed replaces the target file with xml, creating its directory if
// needed. When the file already holds
// identical content it is left untouched, keeping its modification time
// for conditional requests.
func (w *FileWriter) WriteFeed(ctx context.Context, xml string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.unchanged(xml) {
		return nil
	}
	if err := w.write(xml); err != nil {
		return rssfixer.Errorf(rssfixer.EWRITE, "unable to write to file %s", w.path)
	}
	return nil
}

func (w *FileWriter) unchanged(xml string) bool {
	existing, err := os.ReadFile(w.path)
	if err != nil {
		return false
	}
	return xxhash.Sum64(existing) == xxhash.Sum64String(xml)
}

func (w *FileWriter) write(xml string) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	// Remove the temp file on any failure; after a successful rename this
	// is a no-op error we ignore.
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(xml); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.path)
}

// Ensure StreamWriter implements rssfixer.FeedWriter at compile time.
var _ rssfixer.FeedWriter = (*StreamWriter)(nil)

// StreamWriter writes feeds to an io.Writer such as standard output.
type StreamWriter struct {
	w io.Writer
}

// NewStreamWriter creates a new StreamWriter.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// WriteFeed writes xml followed by a newline if it lacks one.
func (s *StreamWriter) WriteFeed(ctx context.Context, xml string) error {
	if !strings.HasSuffix(xml, "\n") {
		xml += "\n"
	}
	if _, err := io.WriteString(s.w, xml); err != nil {
		return rssfixer.Errorf(rssfixer.EWRITE, "unable to write feed: %v", err)
	}
	return nil
}

// String describes the destination for log output.
func (w *FileWriter) String() string {
	return fmt.Sprintf("file:%s", w.path)
}
