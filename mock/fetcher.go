package mock

import (
	"context"

	"github.com/sitescout/sitescout"
)

var _ sitescout.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitescout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ sitescout.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher is a mock implementation of sitescout.ContentFetcher.
type ContentFetcher struct {
	FetchContentFn func(ctx context.Context, url string, limit int) (*sitescout.FetchedContent, error)
}

func (f *ContentFetcher) FetchContent(ctx context.Context, url string, limit int) (*sitescout.FetchedContent, error) {
	return f.FetchContentFn(ctx, url, limit)
}
