package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"

	// Bounded retry applies to rate-limit responses only; any other failure
	// surfaces immediately.
	openAIMaxAttempts = 3
	openAIBaseDelay   = 500 * time.Millisecond
)

// OpenAIProvider wraps the OpenAI chat completions endpoint. It is the
// retry-capable tier of the chain: 429 responses are retried with exponential
// backoff up to a fixed attempt ceiling.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI provider. The API key is required; BaseURL
// optionally points at an OpenAI-compatible endpoint.
func NewOpenAI(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, &ConfigError{Provider: "openai", Missing: "API key"}
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= openAIMaxAttempts; attempt++ {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: p.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens: 600,
		})
		if err == nil {
			if len(resp.Choices) == 0 {
				return "", &ProviderError{Provider: "openai", StatusCode: http.StatusOK, Message: "no choices in response"}
			}
			return resp.Choices[0].Message.Content, nil
		}

		lastErr = mapOpenAIError(err)
		if !IsRateLimit(lastErr) || attempt == openAIMaxAttempts {
			return "", lastErr
		}

		delay := openAIBaseDelay << (attempt - 1)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	return "", lastErr
}

func (p *OpenAIProvider) Name() string { return "openai" }

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		return &ProviderError{Provider: "openai", StatusCode: apiErr.HTTPStatusCode, Message: msg}
	}
	return err
}
