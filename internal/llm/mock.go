package llm

import (
	"context"
	"net/http"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text string
	Err  error
}

// MockProvider is a deterministic Provider for tests. It returns canned
// responses in FIFO order and records every prompt it receives.
type MockProvider struct {
	mu        sync.Mutex
	name      string
	responses []MockResponse

	Prompts []string
}

// NewMock creates a MockProvider with the given name and canned responses.
func NewMock(name string, responses ...MockResponse) *MockProvider {
	return &MockProvider{name: name, responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)

	if len(m.responses) == 0 {
		return "", &ProviderError{
			Provider:   m.name,
			StatusCode: http.StatusServiceUnavailable,
			Message:    "no canned responses left",
		}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Text, nil
}

func (m *MockProvider) Name() string { return m.name }

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
