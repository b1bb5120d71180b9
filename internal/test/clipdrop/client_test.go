package clipdrop_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quickai-backend/internal/clipdrop"
)

func TestTextToImage_Success(t *testing.T) {
	imageBytes := []byte("fake-png-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/text-to-image/v1", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "a lighthouse at dusk", r.FormValue("prompt"))

		w.Header().Set("Content-Type", "image/png")
		w.Write(imageBytes)
	}))
	defer server.Close()

	client := clipdrop.NewClient(server.URL, "test-api-key")
	data, err := client.TextToImage(context.Background(), "a lighthouse at dusk")

	require.NoError(t, err)
	assert.Equal(t, imageBytes, data)
}

func TestTextToImage_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"insufficient credits"}`))
	}))
	defer server.Close()

	client := clipdrop.NewClient(server.URL, "test-api-key")
	data, err := client.TextToImage(context.Background(), "a lighthouse at dusk")

	assert.Nil(t, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 402")
	assert.Contains(t, err.Error(), "insufficient credits")
}

func TestTextToImage_TrailingSlashBaseURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/text-to-image/v1", r.URL.Path)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := clipdrop.NewClient(server.URL+"/", "test-api-key")
	_, err := client.TextToImage(context.Background(), "a lighthouse")
	require.NoError(t, err)
}
