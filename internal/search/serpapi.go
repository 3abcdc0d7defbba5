package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"blogscout/internal/core"
	"blogscout/internal/logger"
)

const serpAPIEndpoint = "https://serpapi.com/search"

// SerpAPIProvider implements Provider using SerpAPI's Google engine.
type SerpAPIProvider struct {
	apiKey    string
	client    *http.Client
	rateLimit time.Duration
	lastCall  time.Time
}

// NewSerpAPIProvider creates a new SerpAPI article search provider.
func NewSerpAPIProvider(apiKey string) *SerpAPIProvider {
	return &SerpAPIProvider{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimit: 1 * time.Second,
	}
}

// GetName returns the name of this provider.
func (s *SerpAPIProvider) GetName() string {
	return "SerpAPI"
}

// Search performs a blog-article search using SerpAPI. Results come back
// ranked 1..n in the order the engine returned them.
func (s *SerpAPIProvider) Search(ctx context.Context, query string, limit int) ([]core.ArticleCandidate, error) {
	if elapsed := time.Since(s.lastCall); elapsed < s.rateLimit {
		time.Sleep(s.rateLimit - elapsed)
	}
	s.lastCall = time.Now()

	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", "google")
	params.Set("api_key", s.apiKey)
	params.Set("num", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serpAPIEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &ProviderError{Provider: s.GetName(), Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: s.GetName(), Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: s.GetName(), Err: fmt.Errorf("request failed with status %d", resp.StatusCode)}
	}

	var apiResponse struct {
		OrganicResults []struct {
			Title    string `json:"title"`
			Link     string `json:"link"`
			Position int    `json:"position"`
		} `json:"organic_results"`
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, &ProviderError{Provider: s.GetName(), Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if apiResponse.Error.Code != 0 {
		return nil, &ProviderError{Provider: s.GetName(), Err: fmt.Errorf("API error (%d): %s", apiResponse.Error.Code, apiResponse.Error.Message)}
	}

	var results []core.ArticleCandidate
	for i, item := range apiResponse.OrganicResults {
		if i >= limit {
			break
		}
		results = append(results, core.ArticleCandidate{
			Rank:        i + 1,
			Title:       item.Title,
			URL:         item.Link,
			ProviderTag: s.GetName(),
		})
	}

	logger.Info("SerpAPI search completed", "query", query, "results_found", len(results))

	return results, nil
}
