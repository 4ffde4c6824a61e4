// Package slog provides logging decorators for sitescout services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitescout/sitescout"
)

// Ensure LoggingContentFetcher implements sitescout.ContentFetcher.
var _ sitescout.ContentFetcher = (*LoggingContentFetcher)(nil)

// LoggingContentFetcher wraps a ContentFetcher with debug logging.
type LoggingContentFetcher struct {
	next   sitescout.ContentFetcher
	logger *slog.Logger
}

// NewLoggingContentFetcher creates a new LoggingContentFetcher.
func NewLoggingContentFetcher(next sitescout.ContentFetcher, logger *slog.Logger) *LoggingContentFetcher {
	return &LoggingContentFetcher{next: next, logger: logger}
}

// FetchContent delegates to the wrapped fetcher and logs the operation.
func (f *LoggingContentFetcher) FetchContent(ctx context.Context, url string, limit int) (content *sitescout.FetchedContent, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		}
		if content != nil {
			attrs = append(attrs,
				"chars", len(content.Text),
				"truncated", content.Truncated,
				"method", string(content.Method),
			)
		}
		f.logger.Info("fetch content", attrs...)
	}(time.Now())
	return f.next.FetchContent(ctx, url, limit)
}
