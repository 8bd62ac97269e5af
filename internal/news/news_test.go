package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return &Client{
		apiKey:     "test-key",
		baseURL:    ts.URL,
		httpClient: &http.Client{Timeout: time.Second},
	}
}

func TestNewWithoutKey(t *testing.T) {
	if c := New(""); c != nil {
		t.Error("expected nil client without an API key")
	}
}

func TestTopHeadlinesNilClient(t *testing.T) {
	var c *Client
	if got := c.TopHeadlines(context.Background()); got != nil {
		t.Errorf("nil client should return nil, got %v", got)
	}
}

func TestTopHeadlinesFormatting(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apiKey"); got != "test-key" {
			t.Errorf("apiKey = %q, want %q", got, "test-key")
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"articles":[
			{"title":"Markets rally","source":{"name":"Reuters"}},
			{"title":"","source":{"name":"AP"}},
			{"title":"No source named","source":{"name":""}}
		]}`)
	})

	got := c.TopHeadlines(context.Background())
	want := []string{"Markets rally (Reuters)", "No source named (source)"}
	if len(got) != len(want) {
		t.Fatalf("got %d headlines, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("headline %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTopHeadlinesCapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"articles":[`)
		for i := 0; i < 8; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"title":"T%d","source":{"name":"S"}}`, i)
		}
		fmt.Fprint(w, `]}`)
	})

	if got := c.TopHeadlines(context.Background()); len(got) != maxHeadlines {
		t.Errorf("expected at most %d headlines, got %d", maxHeadlines, len(got))
	}
}

func TestTopHeadlinesFailuresYieldNil(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200 status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			if got := c.TopHeadlines(context.Background()); got != nil {
				t.Errorf("expected nil on failure, got %v", got)
			}
		})
	}
}
