// Package llm wraps the upstream text-generation providers behind a single
// interface and a ranked failover chain.
package llm

import "context"

// Provider is one upstream text-generation endpoint.
type Provider interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider for logging and question attribution.
	Name() string
}
