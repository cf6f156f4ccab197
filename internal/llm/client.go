// Package llm wraps the OpenAI-compatible chat-completions API used for
// fact extraction (Stage 2) and analytical reasoning (Stage 3). All calls
// request JSON-mode output and are rate-limited per API host.
package llm

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/propscan/ddrgen/internal/model"
	"github.com/propscan/ddrgen/internal/worker"
)

// Client is the minimal completion surface the extraction and reasoning
// layers need. It exists so tests can substitute a stub.
type Client interface {
	// Name identifies the backing endpoint (for metadata and logging)
	Name() string

	// CompleteJSON sends a system+user prompt pair and returns the raw
	// JSON-mode response text
	CompleteJSON(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest is one chat-completion call
type CompletionRequest struct {
	System      string
	Messages    []string // user messages, in order (repair turns append here)
	Model       string
	MaxTokens   int
	Temperature float32
}

// OpenAIClient talks to any OpenAI-compatible endpoint (OpenAI, Groq,
// Ollama's compat API) selected by base URL.
type OpenAIClient struct {
	client  *openai.Client
	cfg     model.LLMConfig
	limiter *worker.Limiter
	host    string
}

// NewOpenAIClient creates a client for the configured endpoint.
func NewOpenAIClient(cfg model.LLMConfig, limiter *worker.Limiter) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required (set GROQ_API_KEY or OPENAI_API_KEY)")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	host := "api.openai.com"
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
		if u, err := url.Parse(cfg.BaseURL); err == nil && u.Host != "" {
			host = u.Host
		}
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		cfg:     cfg,
		limiter: limiter,
		host:    host,
	}, nil
}

// Name returns the API host serving this client
func (c *OpenAIClient) Name() string {
	return c.host
}

// CompleteJSON makes one JSON-mode chat completion call
func (c *OpenAIClient) CompleteJSON(ctx context.Context, req CompletionRequest) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.host); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}
	}

	timeout := c.cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.System},
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: m,
		})
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from %s", c.host)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
