package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sshttp "github.com/sitescout/sitescout/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("discovers URLs via robots.txt directive", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/custom-sitemap.xml\n", server.URL)
		})
		mux.HandleFunc("/custom-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/about</loc></url>
  <url><loc>%s/pricing</loc></url>
</urlset>`, server.URL, server.URL)
		})

		svc := sshttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/about", server.URL + "/pricing"}, urls)
	})

	t.Run("falls back to sitemap.xml without robots directive", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset><url><loc>%s/careers</loc></url></urlset>`, server.URL)
		})

		svc := sshttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/careers"}, urls)
	})

	t.Run("resolves sitemap index recursively", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex><sitemap><loc>%s/pages.xml</loc></sitemap></sitemapindex>`, server.URL)
		})
		mux.HandleFunc("/pages.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/security</loc></url></urlset>`, server.URL)
		})

		svc := sshttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/security"}, urls)
	})

	t.Run("returns empty slice when no sitemap exists", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		svc := sshttp.NewSitemapService(nil)
		urls, err := svc.DiscoverURLs(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Empty(t, urls)
	})

	t.Run("rejects invalid base URL", func(t *testing.T) {
		t.Parallel()

		svc := sshttp.NewSitemapService(nil)
		_, err := svc.DiscoverURLs(context.Background(), "://bad")

		require.Error(t, err)
	})
}
