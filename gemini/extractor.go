package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sitescout/sitescout"
)

// Ensure Extractor implements sitescout.Extractor at compile time.
var _ sitescout.Extractor = (*Extractor)(nil)

// Extractor produces a structured answer from fetched content via one
// inference call. Malformed output is retried once with a stricter
// instruction; a second failure surfaces as EEXTRACT rather than guessing.
type Extractor struct {
	gen Generator
}

// NewExtractor creates a new Extractor.
func NewExtractor(gen Generator) *Extractor {
	return &Extractor{gen: gen}
}

const extractorSystem = `You are a company research analyst. Your job is to carefully read website content and extract specific information.

IMPORTANT INSTRUCTIONS:
1. Only use information explicitly stated on the website
2. If the information is not found, set "found" to false
3. Be precise and quote supporting evidence from the content
4. Report your confidence honestly`

// strictSuffix is appended on the retry after a parse failure.
const strictSuffix = "\n\nReturn ONLY a valid JSON object matching the schema above. No prose, no markdown fences, no additional keys."

// Extract answers the query from the given content in the requested format.
func (e *Extractor) Extract(ctx context.Context, query string, content *sitescout.FetchedContent, format sitescout.OutputFormat) (*sitescout.Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, sitescout.Errorf(sitescout.EINVALID, "query required")
	}
	if content == nil || strings.TrimSpace(content.Text) == "" {
		return nil, sitescout.Errorf(sitescout.EINVALID, "content required")
	}

	prompt := BuildExtractionPrompt(query, content, format)

	out, err := e.gen.Generate(ctx, extractorSystem, prompt)
	if err != nil {
		return nil, err
	}

	result, parseErr := ParseResult(out, format)
	if parseErr == nil {
		return result, nil
	}

	// One stricter retry before giving up.
	out, err = e.gen.Generate(ctx, extractorSystem, prompt+strictSuffix)
	if err != nil {
		return nil, err
	}

	result, parseErr = ParseResult(out, format)
	if parseErr != nil {
		return nil, sitescout.Errorf(sitescout.EEXTRACT, "inference output failed validation after retry: %s", sitescout.ErrorMessage(parseErr))
	}
	return result, nil
}

// BuildExtractionPrompt builds the format-specific extraction prompt.
func BuildExtractionPrompt(query string, content *sitescout.FetchedContent, format sitescout.OutputFormat) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "WEBSITE SECTION (from %s):\n%s\n\n", content.URL, content.Text)
	fmt.Fprintf(&sb, "RESEARCH QUERY: %s\n\n", query)

	sb.WriteString(`Respond with a JSON object with these fields:
- "answer": string
- "items": array of strings (list answers only)
- "confidence": "high", "medium" or "low"
- "evidence": direct quote from the content supporting the answer
- "found": true or false
`)

	switch format {
	case sitescout.FormatBoolean:
		sb.WriteString("\nThe answer must be exactly \"Yes\", \"No\" or \"Unclear\", with a one-line justification in \"evidence\".")
	case sitescout.FormatList:
		sb.WriteString("\nPut each item of the answer as a short string in \"items\", in order. Use an empty array if nothing qualifies.")
	case sitescout.FormatText:
		sb.WriteString("\nThe answer must be a concise free-form answer of 2-3 sentences.")
	default:
		sb.WriteString("\nThe answer must be concise; include the strongest piece of evidence.")
	}

	return sb.String()
}

// wireResult is the untrusted JSON shape produced by the inference service.
type wireResult struct {
	Answer     any      `json:"answer"`
	Items      []string `json:"items"`
	Confidence string   `json:"confidence"`
	Evidence   string   `json:"evidence"`
	Found      *bool    `json:"found"`
}

// ParseResult validates inference output against the requested format and
// returns a normalized Result. The found/confidence invariant is enforced
// here: a not-found response always collapses to the canonical sentinel.
func ParseResult(out string, format sitescout.OutputFormat) (*sitescout.Result, error) {
	raw, err := extractJSON(out)
	if err != nil {
		return nil, err
	}

	var wire wireResult
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, sitescout.Errorf(sitescout.EEXTRACT, "invalid JSON: %v", err)
	}

	if wire.Found == nil {
		return nil, sitescout.Errorf(sitescout.EEXTRACT, "response missing found field")
	}
	if !*wire.Found {
		return sitescout.NotFoundResult(), nil
	}

	answer := stringifyAnswer(wire.Answer)

	confidence := sitescout.Confidence(strings.ToLower(strings.TrimSpace(wire.Confidence)))
	switch confidence {
	case sitescout.ConfidenceHigh, sitescout.ConfidenceMedium, sitescout.ConfidenceLow:
	default:
		return nil, sitescout.Errorf(sitescout.EEXTRACT, "invalid confidence %q", wire.Confidence)
	}

	result := &sitescout.Result{
		Answer:     answer,
		Confidence: confidence,
		Evidence:   strings.TrimSpace(wire.Evidence),
		Found:      true,
	}

	switch format {
	case sitescout.FormatBoolean:
		normalized, err := normalizeBoolean(answer)
		if err != nil {
			return nil, err
		}
		result.Answer = normalized
	case sitescout.FormatList:
		result.Items = wire.Items
		if result.Items == nil {
			result.Items = []string{}
		}
		if result.Answer == "" {
			result.Answer = strings.Join(result.Items, "; ")
		}
	default:
		if strings.TrimSpace(answer) == "" {
			return nil, sitescout.Errorf(sitescout.EEXTRACT, "empty answer for found result")
		}
	}

	if err := result.Validate(format); err != nil {
		return nil, err
	}
	return result, nil
}

// extractJSON pulls the first JSON object out of free text, tolerating
// markdown fences and surrounding prose.
func extractJSON(out string) (string, error) {
	start := strings.IndexByte(out, '{')
	end := strings.LastIndexByte(out, '}')
	if start < 0 || end <= start {
		return "", sitescout.Errorf(sitescout.EEXTRACT, "no JSON object in output")
	}
	return out[start : end+1], nil
}

// stringifyAnswer tolerates non-string answer values in the untrusted
// output.
func stringifyAnswer(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case bool:
		if t {
			return sitescout.AnswerYes
		}
		return sitescout.AnswerNo
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// normalizeBoolean maps answer variants onto the canonical boolean values.
func normalizeBoolean(answer string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes", "true":
		return sitescout.AnswerYes, nil
	case "no", "false":
		return sitescout.AnswerNo, nil
	case "unclear", "unknown", "uncertain":
		return sitescout.AnswerUnclear, nil
	}
	return "", sitescout.Errorf(sitescout.EEXTRACT, "boolean answer must be Yes, No or Unclear, got %q", answer)
}
