package llm

import (
	"context"
	"fmt"
	"log/slog"
)

// Config holds configuration for every known provider plus the ranked order
// in which the chain tries them.
type Config struct {
	// Order ranks providers by name. Entries without configuration are
	// skipped, so the default order degrades gracefully to whatever keys
	// are actually set.
	Order []string

	OpenAI    OpenAIConfig
	Gemini    GeminiConfig
	Anthropic AnthropicConfig
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional override for OpenAI-compatible APIs
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// DefaultOrder is the ranked provider order used when none is configured.
var DefaultOrder = []string{"gemini", "openai", "anthropic"}

// NewChain builds the failover chain from cfg, skipping providers with no
// API key. At least one provider must be configured.
func (c Config) NewChain(ctx context.Context) (*Chain, error) {
	order := c.Order
	if len(order) == 0 {
		order = DefaultOrder
	}

	var providers []Provider
	for _, name := range order {
		switch name {
		case "openai":
			if c.OpenAI.APIKey == "" {
				continue
			}
			p, err := NewOpenAI(c.OpenAI)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		case "gemini":
			if c.Gemini.APIKey == "" {
				continue
			}
			p, err := NewGemini(ctx, c.Gemini)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		case "anthropic":
			if c.Anthropic.APIKey == "" {
				continue
			}
			p, err := NewAnthropic(c.Anthropic)
			if err != nil {
				return nil, err
			}
			providers = append(providers, p)
		default:
			return nil, fmt.Errorf("unknown provider in order: %q", name)
		}
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no text-generation provider configured: set at least one API key")
	}

	chain := NewChain(providers...)
	slog.Info("provider chain ready", "order", chain.Names())
	return chain, nil
}
