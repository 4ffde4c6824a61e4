// Package goquery provides the site structure analyzer, which maps a
// company domain to its candidate sections by classifying discovered links.
package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitescout/sitescout"
)

// maxCandidatesPerSection bounds the candidate URLs kept per section.
// The pipeline tries candidates in order, so only the best few matter.
const maxCandidatesPerSection = 5

// Ensure Analyzer implements sitescout.Analyzer at compile time.
var _ sitescout.Analyzer = (*Analyzer)(nil)

// Analyzer builds a SectionMap for a domain by fetching the root page once,
// extracting outbound same-host links and classifying them into the section
// taxonomy via URL-path pattern matching. When a SitemapService is
// configured, sitemap URLs augment the link-derived candidates.
type Analyzer struct {
	Fetcher  sitescout.Fetcher
	Sitemaps sitescout.SitemapService

	// Patterns overrides sitescout.DefaultSectionPatterns when non-nil.
	Patterns map[string][]string
}

// Analyze builds the section map for a domain. A root fetch failure
// degrades to the reduced single-section map rather than an error.
func (a *Analyzer) Analyze(ctx context.Context, domain string) (*sitescout.SectionMap, error) {
	rootURL, err := sitescout.DomainRootURL(domain)
	if err != nil {
		return nil, err
	}
	base, err := url.Parse(rootURL)
	if err != nil {
		return nil, sitescout.Errorf(sitescout.EINVALID, "invalid domain %q: %v", domain, err)
	}

	html, err := a.Fetcher.Fetch(ctx, rootURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return sitescout.RootOnlySectionMap(domain, rootURL), nil
	}

	candidates := a.classifyLinks(html, base)

	if a.Sitemaps != nil {
		if urls, err := a.Sitemaps.DiscoverURLs(ctx, rootURL); err == nil {
			a.classifyURLs(urls, base, candidates)
		}
	}

	sections := make([]sitescout.SiteSection, 0, len(sitescout.SectionOrder))
	for _, name := range sitescout.SectionOrder {
		if name == sitescout.SectionRoot {
			sections = append(sections, sitescout.SiteSection{Name: name, Candidates: []string{rootURL}})
			continue
		}
		sections = append(sections, sitescout.SiteSection{Name: name, Candidates: candidates[name]})
	}

	return &sitescout.SectionMap{
		Domain:   domain,
		RootURL:  rootURL,
		Sections: sections,
	}, nil
}

// classifyLinks extracts same-host links from the root page and groups them
// by section. Links inside footer elements that match no path pattern are
// kept as footer candidates, since footers often carry compliance and legal
// pages.
func (a *Analyzer) classifyLinks(html string, base *url.URL) map[string][]string {
	candidates := make(map[string][]string)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return candidates
	}

	seen := make(map[string]bool)

	collect := func(selector string, fallbackSection string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" || isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == "" || !isSameHost(base, resolved) || seen[resolved] {
				return
			}

			section := a.classifyPath(resolved)
			if section == "" {
				section = fallbackSection
			}
			if section == "" {
				return
			}

			if len(candidates[section]) >= maxCandidatesPerSection {
				return
			}
			seen[resolved] = true
			candidates[section] = append(candidates[section], resolved)
		})
	}

	collect("nav a[href], header a[href], [role=\"navigation\"] a[href], .nav a[href], .menu a[href]", "")
	collect("main a[href], body a[href]", "")
	collect("footer a[href], .footer a[href]", sitescout.SectionFooter)

	return candidates
}

// classifyURLs classifies pre-discovered URLs (e.g., from a sitemap) into
// the existing candidate groups.
func (a *Analyzer) classifyURLs(urls []string, base *url.URL, candidates map[string][]string) {
	seen := make(map[string]bool)
	for _, lists := range candidates {
		for _, u := range lists {
			seen[u] = true
		}
	}

	for _, u := range urls {
		if seen[u] || !isSameHost(base, u) {
			continue
		}
		section := a.classifyPath(u)
		if section == "" || len(candidates[section]) >= maxCandidatesPerSection {
			continue
		}
		seen[u] = true
		candidates[section] = append(candidates[section], u)
	}
}

// classifyPath matches a URL path against the section pattern table,
// checking sections in canonical order. Returns "" for unclassified paths.
func (a *Analyzer) classifyPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := strings.ToLower(strings.TrimSuffix(u.Path, "/"))
	if path == "" {
		return ""
	}

	patterns := a.Patterns
	if patterns == nil {
		patterns = sitescout.DefaultSectionPatterns
	}

	for _, name := range sitescout.SectionOrder {
		for _, fragment := range patterns[name] {
			if strings.HasPrefix(path, fragment) {
				return name
			}
		}
	}
	return ""
}

// isNonHTTPLink reports whether href uses a non-HTTP scheme or is a pure
// fragment.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "#")
}

// resolveURL resolves a relative URL against a base URL, dropping fragments.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}
