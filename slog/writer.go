package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/rssfixer"
)

// Ensure LoggingFeedWriter implements rssfixer.FeedWriter.
var _ rssfixer.FeedWriter = (*LoggingFeedWriter)(nil)

// LoggingFeedWriter wraps a FeedWriter with logging.
type LoggingFeedWriter struct {
	next   rssfixer.FeedWriter
	dest   string
	logger *slog.Logger
}

// NewLoggingFeedWriter creates a new LoggingFeedWriter. dest names the
// destination in log output.
func NewLoggingFeedWriter(next rssfixer.FeedWriter, dest string, logger *slog.Logger) *LoggingFeedWriter {
	return &LoggingFeedWriter{next: next, dest: dest, logger: logger}
}

// WriteFeed delegates to the wrapped writer and logs the operation.
func (w *LoggingFeedWriter) WriteFeed(ctx context.Context, xml string) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write feed",
			"dest", w.dest,
			"bytes", len(xml),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteFeed(ctx, xml)
}

// Ensure LoggingEntryHistory implements rssfixer.EntryHistory.
var _ rssfixer.EntryHistory = (*LoggingEntryHistory)(nil)

// LoggingEntryHistory wraps an EntryHistory with debug logging.
type LoggingEntryHistory struct {
	next   rssfixer.EntryHistory
	logger *slog.Logger
}

// NewLoggingEntryHistory creates a new LoggingEntryHistory.
func NewLoggingEntryHistory(next rssfixer.EntryHistory, logger *slog.Logger) *LoggingEntryHistory {
	return &LoggingEntryHistory{next: next, logger: logger}
}

// Observe delegates to the wrapped history and logs the operation.
func (h *LoggingEntryHistory) Observe(ctx context.Context, feedID string, entries []rssfixer.Entry) (items []rssfixer.Item, err error) {
	defer func(begin time.Time) {
		h.logger.Debug("observe entries",
			"feed", feedID,
			"entries", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.Observe(ctx, feedID, entries)
}

// FindSightings delegates to the wrapped history.
func (h *LoggingEntryHistory) FindSightings(ctx context.Context, feedID string) ([]*rssfixer.Sighting, error) {
	return h.next.FindSightings(ctx, feedID)
}
