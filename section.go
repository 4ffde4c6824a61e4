package sitescout

import (
	"context"
	"net/url"
	"strings"
)

// Canonical section names. Every SectionMap contains SectionRoot.
const (
	SectionAbout    = "about"
	SectionProducts = "products"
	SectionPricing  = "pricing"
	SectionSecurity = "security"
	SectionCareers  = "careers"
	SectionFooter   = "footer"
	SectionRoot     = "root"
)

// SectionOrder is the canonical ordering of sections in a SectionMap.
var SectionOrder = []string{
	SectionAbout,
	SectionProducts,
	SectionPricing,
	SectionSecurity,
	SectionCareers,
	SectionFooter,
	SectionRoot,
}

// DefaultSectionOrder is the fixed fallback ordering used when the locator
// produces an invalid choice.
var DefaultSectionOrder = []string{SectionAbout, SectionProducts, SectionRoot}

// DefaultSectionPatterns maps section names to URL path fragments used to
// classify discovered links. Matching is case-insensitive on the URL path.
var DefaultSectionPatterns = map[string][]string{
	SectionAbout:    {"/about", "/about-us", "/company", "/who-we-are", "/team", "/mission"},
	SectionProducts: {"/products", "/product", "/solutions", "/services", "/platform", "/features"},
	SectionPricing:  {"/pricing", "/plans", "/plan"},
	SectionSecurity: {"/security", "/compliance", "/trust", "/soc2", "/certifications"},
	SectionCareers:  {"/careers", "/jobs", "/join-us", "/join"},
	SectionFooter:   {"/legal", "/terms", "/privacy", "/imprint", "/contact"},
}

// SiteSection is a named logical region of a company website with an
// ordered list of candidate URLs, best candidate first.
type SiteSection struct {
	Name       string   `json:"name"`
	Candidates []string `json:"candidates"`
}

// SectionMap is the lightweight structure of a site: the full section
// taxonomy in canonical order, each with zero or more candidate URLs.
// Sections without matching links are present with empty candidates so the
// locator always has the complete set of names to choose from.
type SectionMap struct {
	Domain   string        `json:"domain"`
	RootURL  string        `json:"root_url"`
	Sections []SiteSection `json:"sections"`
}

// Names returns the section names in canonical order.
func (m *SectionMap) Names() []string {
	names := make([]string, 0, len(m.Sections))
	for _, s := range m.Sections {
		names = append(names, s.Name)
	}
	return names
}

// Has reports whether the map contains a section with the given name.
func (m *SectionMap) Has(name string) bool {
	for _, s := range m.Sections {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Candidates returns the candidate URLs for a section, always ending with
// the root URL as a last-resort target. Unknown names yield only the root.
func (m *SectionMap) Candidates(name string) []string {
	for _, s := range m.Sections {
		if s.Name != name {
			continue
		}
		urls := make([]string, 0, len(s.Candidates)+1)
		urls = append(urls, s.Candidates...)
		return appendRoot(urls, m.RootURL)
	}
	return []string{m.RootURL}
}

func appendRoot(urls []string, root string) []string {
	for _, u := range urls {
		if u == root {
			return urls
		}
	}
	return append(urls, root)
}

// RootOnlySectionMap returns the reduced map used when the root fetch fails
// entirely: a single synthetic "root" section pointing at the bare domain.
func RootOnlySectionMap(domain, rootURL string) *SectionMap {
	return &SectionMap{
		Domain:  domain,
		RootURL: rootURL,
		Sections: []SiteSection{
			{Name: SectionRoot, Candidates: []string{rootURL}},
		},
	}
}

// DomainRootURL normalizes a bare domain into its root URL. Domains without
// a scheme default to https.
func DomainRootURL(domain string) (string, error) {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return "", Errorf(EINVALID, "domain required")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	u, err := url.Parse(domain)
	if err != nil || u.Host == "" {
		return "", Errorf(EINVALID, "invalid domain %q", domain)
	}
	return strings.TrimSuffix(u.String(), "/"), nil
}

// SectionChoice is the locator's pick: which section is most likely to
// contain the answer, with a short rationale. Not persisted beyond one
// request.
type SectionChoice struct {
	Section   string `json:"section"`
	Rationale string `json:"rationale"`
}

// Analyzer builds a SectionMap for a domain.
type Analyzer interface {
	// Analyze fetches the domain root once, classifies discovered links
	// into the section taxonomy and returns the resulting map. A failed
	// root fetch degrades to RootOnlySectionMap rather than an error;
	// Analyze fails only on invalid input.
	Analyze(ctx context.Context, domain string) (*SectionMap, error)
}

// Locator chooses the section most likely to contain the answer to a query.
// It reasons over section names, not content, which is what keeps the call
// cheap.
type Locator interface {
	// Locate returns a choice constrained to the names in sections.
	// A choice outside that set is an ELOCATOR error.
	Locate(ctx context.Context, query string, sections *SectionMap) (SectionChoice, error)
}
