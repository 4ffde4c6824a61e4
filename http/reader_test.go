package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sitescout/sitescout"
	sshttp "github.com/sitescout/sitescout/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderClient_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("prefixes target URL with reader base", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte("Clean readable text"))
		}))
		defer server.Close()

		reader := sshttp.NewReaderClient(sshttp.WithReaderBaseURL(server.URL))

		text, err := reader.Fetch(context.Background(), "https://example.com/about")
		require.NoError(t, err)
		assert.Equal(t, "Clean readable text", text)
		assert.Equal(t, "/https://example.com/about", gotPath)
	})

	t.Run("non-200 reader response is a fetch error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		reader := sshttp.NewReaderClient(sshttp.WithReaderBaseURL(server.URL))

		_, err := reader.Fetch(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.Equal(t, sitescout.EFETCH, sitescout.ErrorCode(err))
	})

	t.Run("trims trailing slash from base URL", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		reader := sshttp.NewReaderClient(sshttp.WithReaderBaseURL(server.URL + "/"))

		_, err := reader.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "/https://example.com", gotPath)
	})
}
