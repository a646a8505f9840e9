package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/rssfixer"
)

// Ensure LoggingRegistry implements rssfixer.ExtractorRegistry.
var _ rssfixer.ExtractorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an ExtractorRegistry so that every strategy it
// builds logs its runs.
type LoggingRegistry struct {
	next   rssfixer.ExtractorRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next rssfixer.ExtractorRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Extractor delegates to the wrapped registry and wraps the result.
func (r *LoggingRegistry) Extractor(cfg rssfixer.ExtractConfig) (rssfixer.Extractor, error) {
	e, err := r.next.Extractor(cfg)
	if err != nil {
		r.logger.Debug("extractor selection", "mode", string(cfg.Mode), "err", err)
		return nil, err
	}
	return NewLoggingExtractor(e, r.logger), nil
}

// Ensure LoggingExtractor implements rssfixer.Extractor.
var _ rssfixer.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   rssfixer.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next rssfixer.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Mode delegates to the wrapped extractor.
func (e *LoggingExtractor) Mode() rssfixer.Mode {
	return e.next.Mode()
}

// Extract logs the strategy, entry count and duration.
func (e *LoggingExtractor) Extract(html string) (entries []rssfixer.Entry, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"mode", string(e.next.Mode()),
			"entries", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
