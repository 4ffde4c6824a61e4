// Package http provides HTTP-based implementations of the sitescout fetching
// interfaces: direct page retrieval, the reader-service fallback, the
// size-bounded content fetcher and the sitemap discovery service, plus the
// REST API server.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sitescout/sitescout"
)

// DefaultFetchTimeout is the default timeout for direct HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// userAgent is a browser-like identification header. Bare Go user agents are
// rejected by many company sites.
const userAgent = "Mozilla/5.0 (compatible; sitescout/1.0)"

// Ensure Fetcher implements sitescout.Fetcher at compile time.
var _ sitescout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Responses indicating active blocking (403, 429) and network-level failures
// are returned as EFETCH-coded errors so callers can trigger the reader
// fallback.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sitescout.Errorf(sitescout.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classifyNetworkError(url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return "", sitescout.Errorf(sitescout.EFETCH, "HTTP %d for %s (blocked)", resp.StatusCode, url)
	case resp.StatusCode == http.StatusNotFound:
		return "", sitescout.Errorf(sitescout.ENOTFOUND, "HTTP 404 for %s", url)
	default:
		return "", sitescout.Errorf(sitescout.EINTERNAL, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", sitescout.Errorf(sitescout.EFETCH, "read body for %s: %v", url, err)
	}

	return string(body), nil
}

// classifyNetworkError maps transport failures to EFETCH so the content
// fetcher treats them as blocking and falls back to the reader service.
// Context cancellation is passed through unchanged.
func classifyNetworkError(url string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return sitescout.Errorf(sitescout.EFETCH, "timeout fetching %s: %v", url, err)
	}

	return sitescout.Errorf(sitescout.EFETCH, "fetch %s: %v", url, err)
}
