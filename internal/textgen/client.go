// Package textgen is the chat-completion adapter shared by the article,
// blog-title and resume-review capabilities.
package textgen

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// Token budgets fixed by capability. Articles use the caller-supplied
// length instead.
const (
	BlogTitleMaxTokens    = 100
	ResumeReviewMaxTokens = 1200
)

type Client struct {
	client *openai.Client
	model  string
}

// NewClient builds a chat-completion client. baseURL points at any
// OpenAI-compatible endpoint; in production that is the Gemini
// compatibility layer.
func NewClient(apiKey, baseURL, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Generate sends a single user message and returns the first completion
// choice's text.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
