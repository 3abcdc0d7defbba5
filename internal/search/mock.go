package search

import (
	"context"

	"blogscout/internal/core"
)

// MockProvider implements Provider for testing and offline runs.
type MockProvider struct {
	name    string
	results []core.ArticleCandidate
	err     error
}

// NewMockProvider creates a mock article search provider with a small
// canned result set.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		name: "Mock",
		results: []core.ArticleCandidate{
			{Rank: 1, Title: "Example Article 1", URL: "https://example.com/article1", ProviderTag: "Mock"},
			{Rank: 2, Title: "Test Article 2", URL: "https://test.org/article2", ProviderTag: "Mock"},
			{Rank: 3, Title: "Demo Article 3", URL: "https://demo.net/article3", ProviderTag: "Mock"},
		},
	}
}

// GetName returns the name of this provider.
func (m *MockProvider) GetName() string {
	return m.name
}

// Search returns the canned results, truncated to limit, or the
// configured error.
func (m *MockProvider) Search(ctx context.Context, query string, limit int) ([]core.ArticleCandidate, error) {
	if m.err != nil {
		return nil, m.err
	}

	n := limit
	if n <= 0 || n > len(m.results) {
		n = len(m.results)
	}

	results := make([]core.ArticleCandidate, n)
	copy(results, m.results[:n])
	return results, nil
}

// SetResults allows customization of mock results for testing.
func (m *MockProvider) SetResults(results []core.ArticleCandidate) {
	m.results = results
}

// SetError makes every Search call fail with err.
func (m *MockProvider) SetError(err error) {
	m.err = err
}
