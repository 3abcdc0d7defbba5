package video

import (
	"context"
	"time"

	"blogscout/internal/core"
)

// MockProvider implements Provider for testing and offline runs.
type MockProvider struct {
	name    string
	results []core.VideoCandidate
	err     error
}

// NewMockProvider creates a mock video provider with a small canned
// result set, already priority-scored.
func NewMockProvider() *MockProvider {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &MockProvider{
		name: "Mock",
		results: []core.VideoCandidate{
			{
				Title: "Deep Dive Tutorial", ChannelName: "Tech Channel",
				ViewCount: 120000, DurationSeconds: 900, SubscriberCount: 500000,
				PublishedAt: base, URL: "https://www.youtube.com/watch?v=mock0000001",
				PriorityScore: 0.82,
			},
			{
				Title: "Quick Overview", ChannelName: "Dev Shorts",
				ViewCount: 45000, DurationSeconds: 300, SubscriberCount: 80000,
				PublishedAt: base.AddDate(0, -2, 0), URL: "https://www.youtube.com/watch?v=mock0000002",
				PriorityScore: 0.61,
			},
			{
				Title: "Conference Talk", ChannelName: "GopherCon Archive",
				ViewCount: 9000, DurationSeconds: 2400, SubscriberCount: 30000,
				PublishedAt: base.AddDate(-1, 0, 0), URL: "https://www.youtube.com/watch?v=mock0000003",
				PriorityScore: 0.44,
			},
		},
	}
}

// GetName returns the name of this provider.
func (m *MockProvider) GetName() string {
	return m.name
}

// Search returns the canned results, truncated to limit, or the
// configured error.
func (m *MockProvider) Search(ctx context.Context, query string, limit int) ([]core.VideoCandidate, error) {
	if m.err != nil {
		return nil, m.err
	}

	n := limit
	if n <= 0 || n > len(m.results) {
		n = len(m.results)
	}

	results := make([]core.VideoCandidate, n)
	copy(results, m.results[:n])
	return results, nil
}

// SetResults allows customization of mock results for testing.
func (m *MockProvider) SetResults(results []core.VideoCandidate) {
	m.results = results
}

// SetError makes every Search call fail with err.
func (m *MockProvider) SetError(err error) {
	m.err = err
}
