package llm

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

func TestChainFirstProviderWins(t *testing.T) {
	first := NewMock("first", MockResponse{Text: "from first"})
	second := NewMock("second", MockResponse{Text: "from second"})
	chain := NewChain(first, second)

	text, source, err := chain.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "from first" {
		t.Errorf("text = %q, want %q", text, "from first")
	}
	if source != "first" {
		t.Errorf("source = %q, want %q", source, "first")
	}
	if second.CallCount() != 0 {
		t.Errorf("second provider should not be called, got %d calls", second.CallCount())
	}
}

func TestChainFallsBack(t *testing.T) {
	first := NewMock("first", MockResponse{
		Err: &ProviderError{Provider: "first", StatusCode: http.StatusInternalServerError, Message: "boom"},
	})
	second := NewMock("second", MockResponse{Text: "from second"})
	chain := NewChain(first, second)

	text, source, err := chain.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "from second" {
		t.Errorf("text = %q, want %q", text, "from second")
	}
	if source != "second" {
		t.Errorf("source = %q, want %q", source, "second")
	}
}

func TestChainCombinesAllFailures(t *testing.T) {
	first := NewMock("first", MockResponse{
		Err: &ProviderError{Provider: "first", StatusCode: 500, Message: "first down"},
	})
	second := NewMock("second", MockResponse{
		Err: &ProviderError{Provider: "second", StatusCode: 503, Message: "second down"},
	})
	chain := NewChain(first, second)

	_, _, err := chain.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error when every provider fails")
	}
	for _, fragment := range []string{"first down", "second down"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("combined error %q should contain %q", err, fragment)
		}
	}
}

func TestChainEmpty(t *testing.T) {
	chain := NewChain()
	if _, _, err := chain.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error from empty chain")
	}
}

func TestIsRateLimit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"429", &ProviderError{Provider: "openai", StatusCode: http.StatusTooManyRequests}, true},
		{"500", &ProviderError{Provider: "openai", StatusCode: http.StatusInternalServerError}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRateLimit(tt.err); got != tt.want {
				t.Errorf("IsRateLimit() = %v, want %v", got, tt.want)
			}
		})
	}
}
