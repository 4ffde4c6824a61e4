package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitescout/sitescout"
)

// Ensure LoggingLocator implements sitescout.Locator.
var _ sitescout.Locator = (*LoggingLocator)(nil)

// LoggingLocator wraps a Locator with debug logging.
type LoggingLocator struct {
	next   sitescout.Locator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next sitescout.Locator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs the chosen section.
func (l *LoggingLocator) Locate(ctx context.Context, query string, sections *sitescout.SectionMap) (choice sitescout.SectionChoice, err error) {
	defer func(begin time.Time) {
		l.logger.Info("section location",
			"query", query,
			"section", choice.Section,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(ctx, query, sections)
}
