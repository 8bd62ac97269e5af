package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Chain tries an ordered list of providers until one succeeds. The first
// provider is the designated primary; the rest are fallbacks tried in order.
// Providers are never raced concurrently.
type Chain struct {
	providers []Provider
}

// NewChain builds a chain over the given providers, ranked first to last.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Len returns the number of providers in the chain.
func (c *Chain) Len() int {
	return len(c.providers)
}

// Names returns the ranked provider names.
func (c *Chain) Names() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// Generate runs the prompt through the chain and returns the first successful
// response along with the name of the provider that produced it. When every
// provider fails, the returned error combines all of their messages.
func (c *Chain) Generate(ctx context.Context, prompt string) (string, string, error) {
	if len(c.providers) == 0 {
		return "", "", fmt.Errorf("no text-generation providers configured")
	}

	var failures []string
	for _, p := range c.providers {
		text, err := p.Generate(ctx, prompt)
		if err == nil {
			return text, p.Name(), nil
		}
		slog.Warn("provider failed, trying next", "provider", p.Name(), "error", err)
		failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))

		if ctx.Err() != nil {
			break
		}
	}

	return "", "", fmt.Errorf("all providers failed: %s", strings.Join(failures, "; "))
}
