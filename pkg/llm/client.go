// Package llm provides the client for the external generation service.
// Everything crossing this boundary is already masked: the client never
// sees a real identifying value and performs no masking itself.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/draftshield/draftshield/pkg/config"
)

// Message is one chat message for the generation service.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Generator produces a document from masked prompt messages.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewClient creates a generation client from configuration. The API key is
// read from the environment variable named by cfg.APIKeyEnv; BaseURL allows
// pointing at a self-hosted OpenAI-compatible gateway.
func NewClient(cfg config.GenerationConfig) (*Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("generation API key environment variable %s is not set", cfg.APIKeyEnv)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	slog.Info("Generation client configured",
		"model", cfg.Model,
		"base_url", cfg.BaseURL,
		"timeout", cfg.RequestTimeout)

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.RequestTimeoutDuration(),
	}, nil
}

// Generate sends masked prompt messages and returns the (still masked)
// completion text.
func (c *Client) Generate(ctx context.Context, messages []Message) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from generation service")
	}

	return resp.Choices[0].Message.Content, nil
}
