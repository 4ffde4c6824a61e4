// Package readability provides main-content extraction using
// go-readability, as a lighter alternative to the trafilatura extractor.
package readability

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
	"github.com/sitescout/sitescout"
)

// Ensure Extractor implements sitescout.HTMLExtractor at compile time.
var _ sitescout.HTMLExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*sitescout.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sitescout.Errorf(sitescout.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &sitescout.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
