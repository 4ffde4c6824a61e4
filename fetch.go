package sitescout

import "context"

// FetchMethod identifies how content was retrieved.
type FetchMethod string

// Fetch methods.
const (
	FetchDirect FetchMethod = "direct"
	FetchReader FetchMethod = "reader"
)

// DefaultContentLimit is the character ceiling applied to fetched content.
// Bounding content at fetch time is what bounds inference cost.
const DefaultContentLimit = 15000

// FetchedContent is size-bounded readable text retrieved for a URL.
// Owned exclusively by the request that fetched it; never mutated after
// creation. The limit is enforced at fetch time, not after.
type FetchedContent struct {
	URL       string      `json:"url"`
	Text      string      `json:"text"`
	Truncated bool        `json:"truncated"`
	Method    FetchMethod `json:"method"`
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch performs a single retrieval of the URL and returns the raw
	// HTML. The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// ContentFetcher retrieves readable text for a URL, bounded in size.
// Implementations fall back to a content-cleaning extraction service when
// the direct fetch is blocked or yields unparseable content.
type ContentFetcher interface {
	// FetchContent returns at most limit characters of readable text for
	// the URL. A non-positive limit means DefaultContentLimit. Both fetch
	// paths exhausted is an EFETCH error preserving the original cause.
	FetchContent(ctx context.Context, url string, limit int) (*FetchedContent, error)
}

// ExtractResult holds main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML, boilerplate removed.
	ContentHTML string
}

// HTMLExtractor extracts main content from HTML pages, removing boilerplate.
type HTMLExtractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts clean HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// SitemapService discovers URLs from website sitemaps.
// Used by the structure analyzer to augment link-derived section candidates.
type SitemapService interface {
	// DiscoverURLs finds URLs from a site's sitemap. It checks robots.txt
	// for sitemap directives, then falls back to /sitemap.xml. Sitemap
	// indexes are resolved recursively up to a bounded depth.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// CallLimiter paces calls to the external inference service.
type CallLimiter interface {
	// Wait blocks until the rate limit allows another call.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context) error
}
