package textgen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quickai-backend/internal/textgen"
)

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gemini-2.0-flash", req["model"])
		assert.Equal(t, float64(100), req["max_tokens"])

		messages, ok := req["messages"].([]interface{})
		require.True(t, ok)
		require.Len(t, messages, 1)
		message := messages[0].(map[string]interface{})
		assert.Equal(t, "user", message["role"])
		assert.Equal(t, "Coffee shop", message["content"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "1. The Daily Grind"}, "finish_reason": "stop"}
			]
		}`))
	}))
	defer server.Close()

	client := textgen.NewClient("test-api-key", server.URL, "gemini-2.0-flash")
	content, err := client.Generate(context.Background(), "Coffee shop", textgen.BlogTitleMaxTokens)

	require.NoError(t, err)
	assert.Equal(t, "1. The Daily Grind", content)
}

func TestGenerate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()

	client := textgen.NewClient("test-api-key", server.URL, "gemini-2.0-flash")
	_, err := client.Generate(context.Background(), "Coffee shop", textgen.BlogTitleMaxTokens)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerate_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit exceeded", "type": "requests"}}`))
	}))
	defer server.Close()

	client := textgen.NewClient("test-api-key", server.URL, "gemini-2.0-flash")
	_, err := client.Generate(context.Background(), "Coffee shop", textgen.BlogTitleMaxTokens)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat completion failed")
}
