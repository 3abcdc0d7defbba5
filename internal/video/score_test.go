package video

import (
	"testing"
	"time"

	"blogscout/internal/core"
)

func fixedScorer(now time.Time) *WeightedScorer {
	s := NewWeightedScorer()
	s.now = func() time.Time { return now }
	return s
}

func TestWeightedScorerPrefersRecentPopular(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	fresh := core.VideoCandidate{
		ViewCount:       1_000_000,
		DurationSeconds: 600,
		PublishedAt:     now.AddDate(0, 0, -7),
	}
	stale := core.VideoCandidate{
		ViewCount:       1_000,
		DurationSeconds: 600,
		PublishedAt:     now.AddDate(-3, 0, 0),
	}

	if scorer.Score(fresh) <= scorer.Score(stale) {
		t.Errorf("fresh popular video should outscore stale unpopular one: %f vs %f",
			scorer.Score(fresh), scorer.Score(stale))
	}
}

func TestWeightedScorerSubscriberBonus(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	base := core.VideoCandidate{
		ViewCount:       50_000,
		DurationSeconds: 600,
		PublishedAt:     now.AddDate(0, 0, -30),
	}
	withSubs := base
	withSubs.SubscriberCount = 2_000_000

	if scorer.Score(withSubs) <= scorer.Score(base) {
		t.Error("subscriber count should act as a positive modifier")
	}
	diff := scorer.Score(withSubs) - scorer.Score(base)
	if diff > scorer.SubscriberBonus+1e-9 {
		t.Errorf("subscriber modifier %f exceeds configured cap %f", diff, scorer.SubscriberBonus)
	}
}

func TestWeightedScorerZeroValues(t *testing.T) {
	scorer := NewWeightedScorer()
	got := scorer.Score(core.VideoCandidate{})
	if got != 0 {
		t.Errorf("empty candidate should score 0, got %f", got)
	}
}

func TestParseISO8601Duration(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"PT1H2M3S", 3723},
		{"PT15M", 900},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"P1D", 0},
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := parseISO8601Duration(tt.input); got != tt.want {
			t.Errorf("parseISO8601Duration(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
