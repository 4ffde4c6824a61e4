package sitescout

import "context"

// Extractor produces a structured answer from fetched content.
// It issues exactly one logical inference call (plus at most one stricter
// retry on malformed output) and never escalates to other sections; section
// escalation is an orchestrator concern.
type Extractor interface {
	// Extract answers the query from the given content in the requested
	// format. Output that fails schema validation after one retry is an
	// EEXTRACT error.
	Extract(ctx context.Context, query string, content *FetchedContent, format OutputFormat) (*Result, error)
}
