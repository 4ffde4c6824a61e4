// Package gemini implements the section locator and extraction engine on
// Google Gemini.
package gemini

import (
	"context"
	"errors"
	"net/http"

	"github.com/sitescout/sitescout"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for locating and extraction.
const DefaultModel = "gemini-2.5-flash"

// Generator issues a single text-inference call. Implementations must treat
// the returned text as untrusted; schema validation happens in the callers.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Ensure Client implements Generator at compile time.
var _ Generator = (*Client)(nil)

// Client is a Generator backed by the Gemini API. An optional CallLimiter
// paces calls to stay under the service's published rate ceiling.
type Client struct {
	client  *genai.Client
	model   string
	limiter sitescout.CallLimiter
}

// NewClient creates a new Client. An empty model selects DefaultModel;
// limiter may be nil to disable pacing.
func NewClient(client *genai.Client, model string, limiter sitescout.CallLimiter) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{client: client, model: model, limiter: limiter}
}

// Generate sends one prompt to Gemini and returns the raw response text.
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", sitescout.Errorf(sitescout.ERATELIMIT, "inference call budget exhausted: %v", err)
		}
	}

	temp := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", classifyError(err)
	}
	if result == nil {
		return "", sitescout.Errorf(sitescout.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// classifyError maps Gemini call failures onto coded errors so callers can
// tell transient failures (rate limits, outages, network) from hard ones.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return sitescout.Errorf(sitescout.ECANCELED, "gemini call canceled: %v", err)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return sitescout.Errorf(sitescout.ERATELIMIT, "gemini rate limited: %v", err)
		case apiErr.Code >= http.StatusInternalServerError:
			return sitescout.Errorf(sitescout.EFETCH, "gemini unavailable: %v", err)
		}
		return sitescout.Errorf(sitescout.EINTERNAL, "gemini call failed: %v", err)
	}
	// Transport-level failures (timeouts, connection resets) are retryable.
	return sitescout.Errorf(sitescout.EFETCH, "gemini call unreachable: %v", err)
}
