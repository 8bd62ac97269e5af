// Package news looks up recent headlines to ground current-events questions
// in fresh factual context. The lookup is strictly best-effort: any failure
// yields no headlines rather than an error.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://newsapi.org/v2"
	maxHeadlines   = 5
)

// Client queries a news-headline endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a headline client. Returns nil when no API key is configured;
// callers treat a nil client as "no grounding available".
func New(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type headlineResponse struct {
	Articles []struct {
		Title  string `json:"title"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// TopHeadlines returns up to five recent headline strings, each annotated
// with its source name. Returns nil on any failure.
func (c *Client) TopHeadlines(ctx context.Context) []string {
	if c == nil {
		return nil
	}

	url := fmt.Sprintf("%s/top-headlines?language=en&pageSize=%d&apiKey=%s", c.baseURL, maxHeadlines, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("headline lookup failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("headline lookup returned non-OK status", "status", resp.StatusCode)
		return nil
	}

	var body headlineResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil
	}

	var headlines []string
	for _, a := range body.Articles {
		if a.Title == "" {
			continue
		}
		source := a.Source.Name
		if source == "" {
			source = "source"
		}
		headlines = append(headlines, fmt.Sprintf("%s (%s)", a.Title, source))
		if len(headlines) == maxHeadlines {
			break
		}
	}
	return headlines
}
