package http

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sitescout/sitescout"
)

// DefaultMinTextLength is the threshold below which directly fetched content
// is considered a JS-only shell and the reader fallback is used instead.
const DefaultMinTextLength = 200

// Ensure ContentFetcher implements sitescout.ContentFetcher at compile time.
var _ sitescout.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher retrieves size-bounded readable text for a URL.
//
// The direct path fetches raw HTML, extracts the main content and converts
// it to markdown. When the direct path is blocked (EFETCH) or yields text
// below the minimum length, the reader service is tried exactly once.
// Neither path is ever retried within a single call.
type ContentFetcher struct {
	Direct    sitescout.Fetcher
	Reader    sitescout.Fetcher
	Extractor sitescout.HTMLExtractor
	Converter sitescout.Converter

	// MinTextLength overrides DefaultMinTextLength when positive.
	MinTextLength int
}

// FetchContent returns at most limit characters of readable text for url.
func (f *ContentFetcher) FetchContent(ctx context.Context, url string, limit int) (*sitescout.FetchedContent, error) {
	if limit <= 0 {
		limit = sitescout.DefaultContentLimit
	}
	minLen := f.MinTextLength
	if minLen <= 0 {
		minLen = DefaultMinTextLength
	}

	directText, directErr := f.fetchDirect(ctx, url)
	if directErr == nil && len(strings.TrimSpace(directText)) >= minLen {
		text, truncated := truncateAtBoundary(directText, limit)
		return &sitescout.FetchedContent{
			URL:       url,
			Text:      text,
			Truncated: truncated,
			Method:    sitescout.FetchDirect,
		}, nil
	}

	// The direct path failed outright for a non-blocking reason (404, bad
	// URL); the caller should move on to the next candidate instead of
	// burning a reader call.
	if directErr != nil && !fallbackEligible(directErr) {
		return nil, directErr
	}

	readerText, readerErr := f.Reader.Fetch(ctx, url)
	if readerErr != nil {
		if directErr != nil {
			return nil, sitescout.Errorf(sitescout.EFETCH,
				"both fetch paths failed for %s: direct: %s; reader: %s",
				url, sitescout.ErrorMessage(directErr), sitescout.ErrorMessage(readerErr))
		}
		return nil, sitescout.Errorf(sitescout.EFETCH,
			"content for %s too short (%d chars) and reader failed: %s",
			url, len(directText), sitescout.ErrorMessage(readerErr))
	}

	text, truncated := truncateAtBoundary(readerText, limit)
	return &sitescout.FetchedContent{
		URL:       url,
		Text:      text,
		Truncated: truncated,
		Method:    sitescout.FetchReader,
	}, nil
}

// fetchDirect runs the direct path: fetch HTML, extract main content,
// convert to markdown.
func (f *ContentFetcher) fetchDirect(ctx context.Context, url string) (string, error) {
	html, err := f.Direct.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	extracted, err := f.Extractor.Extract(html)
	if err != nil {
		// Unparseable content is a fallback trigger, not a hard failure.
		return "", sitescout.Errorf(sitescout.EFETCH, "extract content for %s: %v", url, err)
	}

	markdown, err := f.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", sitescout.Errorf(sitescout.EFETCH, "convert content for %s: %v", url, err)
	}

	return markdown, nil
}

// fallbackEligible reports whether a direct-path failure should trigger the
// reader fallback. Blocking responses, timeouts and connection failures are
// all EFETCH-coded.
func fallbackEligible(err error) bool {
	return sitescout.ErrorCode(err) == sitescout.EFETCH
}

// truncateAtBoundary cuts text to at most limit characters, backing up to
// the last whitespace so words and tags are not split. Returns the possibly
// shortened text and whether truncation occurred.
func truncateAtBoundary(text string, limit int) (string, bool) {
	if len(text) <= limit {
		return text, false
	}

	// Back up to a rune boundary so the cut never splits a multi-byte
	// character.
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	cut := text[:limit]
	if idx := lastSpaceIndex(cut); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRightFunc(cut, unicode.IsSpace), true
}

func lastSpaceIndex(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if unicode.IsSpace(rune(s[i])) {
			return i
		}
	}
	return -1
}
