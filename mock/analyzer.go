package mock

import (
	"context"

	"github.com/sitescout/sitescout"
)

var _ sitescout.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of sitescout.Analyzer.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, domain string) (*sitescout.SectionMap, error)
}

func (a *Analyzer) Analyze(ctx context.Context, domain string) (*sitescout.SectionMap, error) {
	return a.AnalyzeFn(ctx, domain)
}

var _ sitescout.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of sitescout.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
