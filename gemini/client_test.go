package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sitescout/sitescout"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	t.Run("rate limit responses are transient", func(t *testing.T) {
		t.Parallel()

		err := classifyError(genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"})
		assert.Equal(t, sitescout.ERATELIMIT, sitescout.ErrorCode(err))
		assert.True(t, sitescout.IsTransient(err))
	})

	t.Run("server errors are transient", func(t *testing.T) {
		t.Parallel()

		err := classifyError(genai.APIError{Code: 503, Status: "UNAVAILABLE"})
		assert.Equal(t, sitescout.EFETCH, sitescout.ErrorCode(err))
		assert.True(t, sitescout.IsTransient(err))
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		t.Parallel()

		err := classifyError(genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"})
		assert.Equal(t, sitescout.EINTERNAL, sitescout.ErrorCode(err))
		assert.False(t, sitescout.IsTransient(err))
	})

	t.Run("wrapped api errors are still classified", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("generate content: %w", genai.APIError{Code: 429})
		err := classifyError(wrapped)
		assert.Equal(t, sitescout.ERATELIMIT, sitescout.ErrorCode(err))
	})

	t.Run("context cancellation is not misread as an api failure", func(t *testing.T) {
		t.Parallel()

		err := classifyError(context.Canceled)
		assert.Equal(t, sitescout.ECANCELED, sitescout.ErrorCode(err))
		assert.False(t, sitescout.IsTransient(err))
	})

	t.Run("transport failures are transient", func(t *testing.T) {
		t.Parallel()

		err := classifyError(errors.New("dial tcp: connection reset by peer"))
		assert.Equal(t, sitescout.EFETCH, sitescout.ErrorCode(err))
		assert.True(t, sitescout.IsTransient(err))
	})
}
