package htmltomarkdown_test

import (
	"testing"

	"github.com/sitescout/sitescout"
	"github.com/sitescout/sitescout/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		markdown, err := conv.Convert("<h2>Pricing</h2><p>Plans start at <strong>$49</strong> per month.</p>")

		require.NoError(t, err)
		assert.Contains(t, markdown, "## Pricing")
		assert.Contains(t, markdown, "**$49**")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		markdown, err := conv.Convert("<ul><li>Starter</li><li>Enterprise</li></ul>")

		require.NoError(t, err)
		assert.Contains(t, markdown, "- Starter")
		assert.Contains(t, markdown, "- Enterprise")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
	})
}
