package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sitescout/sitescout"
)

// DefaultReaderBaseURL is the public endpoint of the Jina AI Reader, a
// content-cleaning extraction service that returns readable text for a URL.
const DefaultReaderBaseURL = "https://r.jina.ai"

// DefaultReaderTimeout is the timeout for reader requests. The reader
// renders the page server-side, so it is slower than a direct fetch.
const DefaultReaderTimeout = 30 * time.Second

// Ensure ReaderClient implements sitescout.Fetcher at compile time.
var _ sitescout.Fetcher = (*ReaderClient)(nil)

// ReaderClient fetches cleaned readable text for a URL through a
// reader-style extraction service. It satisfies sitescout.Fetcher so the
// content fetcher can treat the direct and fallback paths uniformly.
type ReaderClient struct {
	client  *http.Client
	baseURL string
}

// ReaderOption configures a ReaderClient.
type ReaderOption func(*ReaderClient)

// WithReaderBaseURL overrides the reader service endpoint.
func WithReaderBaseURL(baseURL string) ReaderOption {
	return func(r *ReaderClient) {
		r.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithReaderTimeout sets the timeout for reader requests.
func WithReaderTimeout(d time.Duration) ReaderOption {
	return func(r *ReaderClient) {
		r.client.Timeout = d
	}
}

// NewReaderClient creates a new ReaderClient.
func NewReaderClient(opts ...ReaderOption) *ReaderClient {
	r := &ReaderClient{
		client:  &http.Client{Timeout: DefaultReaderTimeout},
		baseURL: DefaultReaderBaseURL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Fetch retrieves cleaned text for the target URL via the reader service.
func (r *ReaderClient) Fetch(ctx context.Context, url string) (string, error) {
	readerURL := r.baseURL + "/" + url

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, readerURL, nil)
	if err != nil {
		return "", sitescout.Errorf(sitescout.EINVALID, "invalid reader URL %q: %v", readerURL, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", classifyNetworkError(readerURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", sitescout.Errorf(sitescout.EFETCH, "reader HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", sitescout.Errorf(sitescout.EFETCH, "read reader body for %s: %v", url, err)
	}

	return string(body), nil
}
