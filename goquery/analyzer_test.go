package goquery_test

import (
	"context"
	"testing"

	"github.com/sitescout/sitescout"
	"github.com/sitescout/sitescout/goquery"
	"github.com/sitescout/sitescout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rootHTML = `<html>
<head><title>Acme Corp</title></head>
<body>
<nav>
  <a href="/about">About Us</a>
  <a href="/products">Products</a>
  <a href="/pricing">Pricing</a>
  <a href="https://twitter.com/acme">Twitter</a>
</nav>
<main>
  <a href="/solutions/enterprise">Enterprise</a>
  <a href="mailto:hello@acme.com">Email</a>
  <a href="#features">Features</a>
</main>
<footer>
  <a href="/security">Security</a>
  <a href="/legal/terms">Terms</a>
  <a href="/partners">Partners</a>
</footer>
</body>
</html>`

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("classifies links into the section taxonomy", func(t *testing.T) {
		t.Parallel()

		analyzer := &goquery.Analyzer{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, url string) (string, error) {
				assert.Equal(t, "https://acme.com", url)
				return rootHTML, nil
			}},
		}

		m, err := analyzer.Analyze(context.Background(), "acme.com")
		require.NoError(t, err)

		assert.Equal(t, "acme.com", m.Domain)
		assert.Equal(t, "https://acme.com", m.RootURL)
		assert.Equal(t, []string{"https://acme.com/about", "https://acme.com"}, m.Candidates(sitescout.SectionAbout))
		assert.Contains(t, m.Candidates(sitescout.SectionProducts), "https://acme.com/products")
		assert.Contains(t, m.Candidates(sitescout.SectionProducts), "https://acme.com/solutions/enterprise")
		assert.Contains(t, m.Candidates(sitescout.SectionPricing), "https://acme.com/pricing")
		assert.Contains(t, m.Candidates(sitescout.SectionSecurity), "https://acme.com/security")
	})

	t.Run("footer links without path match become footer candidates", func(t *testing.T) {
		t.Parallel()

		analyzer := &goquery.Analyzer{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				return rootHTML, nil
			}},
		}

		m, err := analyzer.Analyze(context.Background(), "acme.com")
		require.NoError(t, err)

		footer := m.Candidates(sitescout.SectionFooter)
		assert.Contains(t, footer, "https://acme.com/legal/terms")
		assert.Contains(t, footer, "https://acme.com/partners")
	})

	t.Run("external and non-HTTP links are skipped", func(t *testing.T) {
		t.Parallel()

		analyzer := &goquery.Analyzer{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				return rootHTML, nil
			}},
		}

		m, err := analyzer.Analyze(context.Background(), "acme.com")
		require.NoError(t, err)

		for _, section := range m.Sections {
			for _, u := range section.Candidates {
				assert.NotContains(t, u, "twitter.com")
				assert.NotContains(t, u, "mailto:")
			}
		}
	})

	t.Run("all taxonomy sections appear even without matches", func(t *testing.T) {
		t.Parallel()

		analyzer := &goquery.Analyzer{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body>no links here</body></html>", nil
			}},
		}

		m, err := analyzer.Analyze(context.Background(), "acme.com")
		require.NoError(t, err)

		assert.Equal(t, sitescout.SectionOrder, m.Names())
		assert.Equal(t, []string{"https://acme.com"}, m.Candidates(sitescout.SectionCareers))
	})

	t.Run("root fetch failure degrades to root-only map", func(t *testing.T) {
		t.Parallel()

		analyzer := &goquery.Analyzer{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", sitescout.Errorf(sitescout.EFETCH, "connection refused")
			}},
		}

		m, err := analyzer.Analyze(context.Background(), "unreachable.example")
		require.NoError(t, err)

		require.Len(t, m.Sections, 1)
		assert.Equal(t, sitescout.SectionRoot, m.Sections[0].Name)
	})

	t.Run("sitemap URLs augment link candidates", func(t *testing.T) {
		t.Parallel()

		analyzer := &goquery.Analyzer{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><body></body></html>", nil
			}},
			Sitemaps: &mock.SitemapService{DiscoverURLsFn: func(_ context.Context, baseURL string) ([]string, error) {
				return []string{"https://acme.com/careers/open-roles", "https://acme.com/trust-center"}, nil
			}},
		}

		m, err := analyzer.Analyze(context.Background(), "acme.com")
		require.NoError(t, err)

		assert.Contains(t, m.Candidates(sitescout.SectionCareers), "https://acme.com/careers/open-roles")
		assert.Contains(t, m.Candidates(sitescout.SectionSecurity), "https://acme.com/trust-center")
	})

	t.Run("sitemap failure is not fatal", func(t *testing.T) {
		t.Parallel()

		analyzer := &goquery.Analyzer{
			Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
				return rootHTML, nil
			}},
			Sitemaps: &mock.SitemapService{DiscoverURLsFn: func(_ context.Context, _ string) ([]string, error) {
				return nil, sitescout.Errorf(sitescout.EFETCH, "no sitemap")
			}},
		}

		_, err := analyzer.Analyze(context.Background(), "acme.com")
		require.NoError(t, err)
	})

	t.Run("invalid domain is an error", func(t *testing.T) {
		t.Parallel()

		analyzer := &goquery.Analyzer{Fetcher: &mock.Fetcher{}}

		_, err := analyzer.Analyze(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
	})
}
