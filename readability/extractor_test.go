package readability_test

import (
	"testing"

	"github.com/sitescout/sitescout"
	"github.com/sitescout/sitescout/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and content", func(t *testing.T) {
		t.Parallel()

		html := `<html>
<head><title>About Acme Corp</title></head>
<body>
<article>
<h1>About Us</h1>
<p>Acme Corp builds infrastructure software for enterprise customers across the financial services and healthcare industries. Founded in 2015, the company serves over five hundred organizations worldwide.</p>
<p>Our mission is to make reliable infrastructure accessible to every engineering team.</p>
</article>
</body>
</html>`

		extractor := readability.NewExtractor()
		result, err := extractor.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "About Acme Corp", result.Title)
		assert.Contains(t, result.ContentHTML, "infrastructure software")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		extractor := readability.NewExtractor()
		_, err := extractor.Extract("")

		require.Error(t, err)
		assert.Equal(t, sitescout.EINVALID, sitescout.ErrorCode(err))
	})
}
