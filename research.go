package sitescout

import (
	"context"
	"strings"
	"time"
)

// OutputFormat controls the shape of an extracted answer.
type OutputFormat string

// Supported output formats.
const (
	FormatBoolean    OutputFormat = "boolean"
	FormatList       OutputFormat = "list"
	FormatText       OutputFormat = "text"
	FormatStructured OutputFormat = "structured"
)

// ParseFormat parses a string into an OutputFormat.
// The empty string defaults to FormatStructured.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatBoolean:
		return FormatBoolean, nil
	case FormatList:
		return FormatList, nil
	case FormatText:
		return FormatText, nil
	case FormatStructured, OutputFormat(""):
		return FormatStructured, nil
	}
	return "", Errorf(EINVALID, "unknown output format %q", s)
}

// Request is one research question against one company domain.
// Immutable once created; one per pipeline invocation.
type Request struct {
	Domain string       `json:"domain"`
	Query  string       `json:"query"`
	Format OutputFormat `json:"output_format"`
}

// Validate returns an error if the request contains invalid fields.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Domain) == "" {
		return Errorf(EINVALID, "request domain required")
	}
	if strings.ContainsAny(r.Domain, " \t\n") {
		return Errorf(EINVALID, "invalid domain %q", r.Domain)
	}
	if strings.TrimSpace(r.Query) == "" {
		return Errorf(EINVALID, "request query required")
	}
	if _, err := ParseFormat(string(r.Format)); err != nil {
		return err
	}
	return nil
}

// Confidence is a coarse three-level estimate of answer reliability.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Boolean answer values for FormatBoolean requests.
const (
	AnswerYes     = "Yes"
	AnswerNo      = "No"
	AnswerUnclear = "Unclear"
)

// NotFoundAnswer is the sentinel answer used when the searched section does
// not contain the requested information.
const NotFoundAnswer = "Not found on website"

// Result is a structured answer extracted from website content.
//
// Invariant: Found == false implies Confidence == ConfidenceLow and
// Answer == NotFoundAnswer. Items is populated only for FormatList.
type Result struct {
	Answer     string     `json:"answer"`
	Items      []string   `json:"items,omitempty"`
	Confidence Confidence `json:"confidence"`
	Evidence   string     `json:"evidence,omitempty"`
	Found      bool       `json:"found"`
}

// NotFoundResult returns the canonical Result for information absent from
// the searched section.
func NotFoundResult() *Result {
	return &Result{
		Answer:     NotFoundAnswer,
		Confidence: ConfidenceLow,
		Found:      false,
	}
}

// Validate checks the result against its format and the found/confidence
// invariant.
func (r *Result) Validate(format OutputFormat) error {
	switch r.Confidence {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
	default:
		return Errorf(EEXTRACT, "invalid confidence %q", r.Confidence)
	}
	if !r.Found {
		if r.Confidence != ConfidenceLow {
			return Errorf(EEXTRACT, "not-found result must have low confidence, got %q", r.Confidence)
		}
		if r.Answer != NotFoundAnswer {
			return Errorf(EEXTRACT, "not-found result must use the not-found answer, got %q", r.Answer)
		}
		return nil
	}
	if format == FormatBoolean {
		switch r.Answer {
		case AnswerYes, AnswerNo, AnswerUnclear:
		default:
			return Errorf(EEXTRACT, "boolean answer must be Yes, No or Unclear, got %q", r.Answer)
		}
	}
	return nil
}

// ResultRecord is the outcome of one (domain, query) pair within a batch.
// Exactly one of Result and Err is set. Immutable once emitted.
type ResultRecord struct {
	Request Request       `json:"request"`
	Result  *Result       `json:"result,omitempty"`
	Err     error         `json:"-"`
	Section string        `json:"section_searched,omitempty"`
	Elapsed time.Duration `json:"elapsed"`
}

// Researcher runs the full pipeline for a single request.
type Researcher interface {
	// Research answers one request. Failures are carried inside the
	// returned record, never as a bare error, so batch callers always
	// receive one record per input.
	Research(ctx context.Context, req Request) ResultRecord
}

// BatchRunner drives the pipeline over many requests.
type BatchRunner interface {
	// Run processes requests and emits one record per request via emit.
	// Records for the same domain are emitted in input order; no ordering
	// is guaranteed across domains. Run returns an error only for
	// configuration-level failures; per-request failures are recorded.
	Run(ctx context.Context, reqs []Request, emit func(ResultRecord)) error
}
