package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/sitescout/sitescout"
)

// Ensure Locator implements sitescout.Locator at compile time.
var _ sitescout.Locator = (*Locator)(nil)

// Locator chooses the website section most likely to contain the answer to
// a query. It reasons over section names only, never page content, which is
// what keeps this call cheap relative to sending pages.
type Locator struct {
	gen Generator
}

// NewLocator creates a new Locator.
func NewLocator(gen Generator) *Locator {
	return &Locator{gen: gen}
}

const locatorSystem = "You are a website analysis expert. Given a research query and the sections available on a company website, you identify where the information is most likely to be found."

// sectionGuide describes what each section typically contains.
var sectionGuide = map[string]string{
	sitescout.SectionAbout:    "company info, mission, team, history",
	sitescout.SectionProducts: "product listings, services, features",
	sitescout.SectionPricing:  "pricing, plans, enterprise tiers",
	sitescout.SectionSecurity: "certifications, compliance, trust center",
	sitescout.SectionCareers:  "open roles, hiring, company culture",
	sitescout.SectionFooter:   "legal info, certifications, contact details",
	sitescout.SectionRoot:     "general company information on the home page",
}

// Locate asks the inference service which section to search.
func (l *Locator) Locate(ctx context.Context, query string, sections *sitescout.SectionMap) (sitescout.SectionChoice, error) {
	if strings.TrimSpace(query) == "" {
		return sitescout.SectionChoice{}, sitescout.Errorf(sitescout.EINVALID, "query required")
	}
	if sections == nil || len(sections.Sections) == 0 {
		return sitescout.SectionChoice{}, sitescout.Errorf(sitescout.EINVALID, "section map required")
	}

	out, err := l.gen.Generate(ctx, locatorSystem, BuildLocatorPrompt(query, sections))
	if err != nil {
		return sitescout.SectionChoice{}, err
	}

	return ParseChoice(out, sections)
}

// BuildLocatorPrompt builds the section-choice prompt. Only section names
// are included, never content.
func BuildLocatorPrompt(query string, sections *sitescout.SectionMap) string {
	var sb strings.Builder

	sb.WriteString("AVAILABLE SECTIONS:\n")
	for _, name := range sections.Names() {
		guide := sectionGuide[name]
		if guide == "" {
			guide = "miscellaneous pages"
		}
		fmt.Fprintf(&sb, "- %s: usually contains %s\n", name, guide)
	}

	fmt.Fprintf(&sb, "\nRESEARCH QUERY: %s\n\n", query)
	sb.WriteString("Which ONE section is most likely to contain the answer? ")
	sb.WriteString("Respond with only the section name and a brief one-line reason, for example:\n")
	sb.WriteString("security - compliance certifications are typically documented there")

	return sb.String()
}

// ParseChoiceLine splits the first line of locator output into a section
// name and rationale.
func ParseChoiceLine(out string) (name, rationale string) {
	line := strings.TrimSpace(out)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}

	name = line
	if idx := strings.Index(line, "-"); idx >= 0 {
		name = line[:idx]
		rationale = strings.TrimSpace(line[idx+1:])
	}
	name = strings.ToLower(strings.Trim(strings.TrimSpace(name), "\"'.:*"))
	return name, rationale
}

// ParseChoice parses the locator output into a SectionChoice constrained to
// the known section names. Any name outside the map is an ELOCATOR error.
func ParseChoice(out string, sections *sitescout.SectionMap) (sitescout.SectionChoice, error) {
	name, rationale := ParseChoiceLine(out)
	if !sections.Has(name) {
		return sitescout.SectionChoice{}, sitescout.Errorf(sitescout.ELOCATOR, "locator chose unknown section %q", name)
	}
	return sitescout.SectionChoice{Section: name, Rationale: rationale}, nil
}
