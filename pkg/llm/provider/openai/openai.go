// Package openai implements pkg/llm's ChatModel on the OpenAI chat
// completions API.
package openai

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/rosemira/rosebot/pkg/llm"
)

// DefaultModel is the default chat model.
const DefaultModel = "gpt-4o-mini"

// Client wraps the OpenAI chat completions API.
type Client struct {
	client      *goopenai.Client
	model       string
	temperature float32
	maxTokens   int
}

// Config holds configuration for the OpenAI chat client.
type Config struct {
	// APIKey is the OpenAI API key.
	APIKey string

	// BaseURL overrides the OpenAI API URL. Useful for proxies and
	// API-compatible servers. Empty means the public API.
	BaseURL string

	// Model is the chat model to use. Defaults to DefaultModel if empty.
	Model string

	// Temperature controls sampling randomness.
	Temperature float32

	// MaxTokens limits the completion length. Zero means no limit.
	MaxTokens int
}

// NewClient creates a new OpenAI chat client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientConfig := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:      goopenai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete returns the assistant reply for the given messages.
func (c *Client) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	chatMessages := make([]goopenai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		chatMessages[i] = goopenai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    chatMessages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	return nil
}

var _ llm.ChatModel = (*Client)(nil)
