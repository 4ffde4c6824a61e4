package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitescout/sitescout"
)

// Ensure LoggingAnalyzer implements sitescout.Analyzer.
var _ sitescout.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with debug logging.
type LoggingAnalyzer struct {
	next   sitescout.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next sitescout.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the operation.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, domain string) (sections *sitescout.SectionMap, err error) {
	defer func(begin time.Time) {
		count := 0
		if sections != nil {
			count = len(sections.Sections)
		}
		a.logger.Info("site analysis",
			"domain", domain,
			"sections", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Analyze(ctx, domain)
}
