package mock

import (
	"context"

	"github.com/sitescout/sitescout"
)

var _ sitescout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of sitescout.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, query string, content *sitescout.FetchedContent, format sitescout.OutputFormat) (*sitescout.Result, error)
}

func (e *Extractor) Extract(ctx context.Context, query string, content *sitescout.FetchedContent, format sitescout.OutputFormat) (*sitescout.Result, error) {
	return e.ExtractFn(ctx, query, content, format)
}

var _ sitescout.HTMLExtractor = (*HTMLExtractor)(nil)

// HTMLExtractor is a mock implementation of sitescout.HTMLExtractor.
type HTMLExtractor struct {
	ExtractFn func(html string) (*sitescout.ExtractResult, error)
}

func (e *HTMLExtractor) Extract(html string) (*sitescout.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ sitescout.Converter = (*Converter)(nil)

// Converter is a mock implementation of sitescout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
