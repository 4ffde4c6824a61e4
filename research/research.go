// Package research provides the section-targeted research pipeline.
// It coordinates site structure analysis, section location, bounded
// fetching and structured extraction for single requests and batches.
package research

import (
	"context"
	"time"

	"github.com/sitescout/sitescout"
)

var _ sitescout.Researcher = (*Agent)(nil)

// Agent runs the research pipeline for a single request: analyze the
// domain, pick one section, fetch that section bounded in size, extract
// a structured answer.
type Agent struct {
	Analyzer     sitescout.Analyzer
	Locator      sitescout.Locator
	Fetcher      sitescout.ContentFetcher
	Extractor    sitescout.Extractor
	Cache        *Cache
	ContentLimit int
	RetryDelays  []time.Duration
}

// Research answers one request. Failures are carried in the record so a
// batch always yields one record per input.
func (a *Agent) Research(ctx context.Context, req sitescout.Request) (rec sitescout.ResultRecord) {
	start := time.Now()
	rec.Request = req
	defer func() { rec.Elapsed = time.Since(start) }()

	if err := req.Validate(); err != nil {
		rec.Err = err
		return rec
	}
	format, _ := sitescout.ParseFormat(string(req.Format))

	sections, err := a.sectionMap(ctx, req.Domain)
	if err != nil {
		rec.Err = err
		return rec
	}

	delays := a.retryDelays()

	choice, err := retryWithDelays(ctx, delays, func(ctx context.Context) (sitescout.SectionChoice, error) {
		return a.Locator.Locate(ctx, req.Query, sections)
	})
	if err != nil {
		if sitescout.ErrorCode(err) != sitescout.ELOCATOR {
			rec.Err = err
			return rec
		}
		// A bad locator answer falls back to the fixed section order
		// rather than failing the request.
		choice = fallbackChoice(sections)
	}
	rec.Section = choice.Section

	content, err := a.sectionContent(ctx, req.Domain, choice.Section, sections)
	if err != nil {
		rec.Err = err
		return rec
	}

	result, err := retryWithDelays(ctx, delays, func(ctx context.Context) (*sitescout.Result, error) {
		return a.Extractor.Extract(ctx, req.Query, content, format)
	})
	if err != nil {
		rec.Err = err
		return rec
	}
	rec.Result = result

	return rec
}

// sectionMap returns the domain's section map, via the cache when one is
// configured.
func (a *Agent) sectionMap(ctx context.Context, domain string) (*sitescout.SectionMap, error) {
	analyze := func(ctx context.Context) (*sitescout.SectionMap, error) {
		return a.Analyzer.Analyze(ctx, domain)
	}
	if a.Cache == nil {
		return analyze(ctx)
	}
	return a.Cache.SectionMap(ctx, domain, analyze)
}

// sectionContent returns the fetched content for the chosen section, via
// the cache when one is configured.
func (a *Agent) sectionContent(ctx context.Context, domain, section string, sections *sitescout.SectionMap) (*sitescout.FetchedContent, error) {
	fetch := func(ctx context.Context) (*sitescout.FetchedContent, error) {
		return a.fetchSection(ctx, section, sections)
	}
	if a.Cache == nil {
		return fetch(ctx)
	}
	return a.Cache.Content(ctx, domain, section, fetch)
}

// fetchSection tries the section's candidate URLs in priority order and
// returns the first successful fetch. Candidate iteration always ends at
// the root URL.
func (a *Agent) fetchSection(ctx context.Context, section string, sections *sitescout.SectionMap) (*sitescout.FetchedContent, error) {
	limit := a.ContentLimit
	if limit <= 0 {
		limit = sitescout.DefaultContentLimit
	}
	delays := a.retryDelays()

	candidates := sections.Candidates(section)

	var lastErr error
	for _, url := range candidates {
		fetch := func(ctx context.Context, url string) (*sitescout.FetchedContent, error) {
			return a.Fetcher.FetchContent(ctx, url, limit)
		}
		content, err := FetchWithRetryDelays(ctx, url, fetch, delays)
		if err == nil {
			return content, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, sitescout.Errorf(sitescout.ECANCELED, "fetch canceled: %v", ctx.Err())
		}
	}

	if lastErr == nil {
		return nil, sitescout.Errorf(sitescout.ENOTFOUND, "section %q has no candidate pages", section)
	}
	return nil, lastErr
}

func (a *Agent) retryDelays() []time.Duration {
	if a.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return a.RetryDelays
}

// fallbackChoice picks the first section of the default order present in
// the map. The root section is always present, so this never fails.
func fallbackChoice(sections *sitescout.SectionMap) sitescout.SectionChoice {
	for _, name := range sitescout.DefaultSectionOrder {
		if sections.Has(name) {
			return sitescout.SectionChoice{
				Section:   name,
				Rationale: "default section order",
			}
		}
	}
	return sitescout.SectionChoice{
		Section:   sitescout.SectionRoot,
		Rationale: "default section order",
	}
}
