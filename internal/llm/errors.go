package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ProviderError reports a non-success response from an upstream endpoint.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s error: %d %s", e.Provider, e.StatusCode, e.Message)
}

// IsRateLimit reports whether err is an upstream rate-limit rejection.
func IsRateLimit(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.StatusCode == http.StatusTooManyRequests
}

// ConfigError reports a provider that cannot be constructed because required
// configuration is missing. It is raised at startup, before any network call.
type ConfigError struct {
	Provider string
	Missing  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s provider not configured: %s is required", e.Provider, e.Missing)
}
