package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitescout/sitescout"
)

// Ensure LoggingExtractor implements sitescout.Extractor.
var _ sitescout.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   sitescout.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next sitescout.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, query string, content *sitescout.FetchedContent, format sitescout.OutputFormat) (result *sitescout.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"query", query,
			"format", string(format),
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs,
				"found", result.Found,
				"confidence", string(result.Confidence),
			)
		}
		e.logger.Info("extraction", attrs...)
	}(time.Now())
	return e.next.Extract(ctx, query, content, format)
}
