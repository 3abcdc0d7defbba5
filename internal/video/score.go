package video

import (
	"math"
	"time"

	"blogscout/internal/core"
)

// WeightedScorer is the default priority scoring strategy: a weighted
// blend of recency, popularity and duration fit, with subscriber count as
// a modifier. All components are normalized to [0, 1] before weighting so
// the final score is comparable across candidates.
type WeightedScorer struct {
	RecencyWeight    float64
	PopularityWeight float64
	DurationWeight   float64

	// SubscriberBonus is the maximum additive modifier for large channels.
	SubscriberBonus float64

	now func() time.Time
}

// NewWeightedScorer creates a scorer with the default weights.
func NewWeightedScorer() *WeightedScorer {
	return &WeightedScorer{
		RecencyWeight:    0.4,
		PopularityWeight: 0.35,
		DurationWeight:   0.25,
		SubscriberBonus:  0.1,
		now:              time.Now,
	}
}

// Score computes the priority score for a candidate.
func (s *WeightedScorer) Score(v core.VideoCandidate) float64 {
	score := s.RecencyWeight*s.recency(v.PublishedAt) +
		s.PopularityWeight*s.popularity(v.ViewCount) +
		s.DurationWeight*s.durationFit(v.DurationSeconds)

	if v.SubscriberCount > 0 {
		// log10 scale: 1M subscribers reaches the full bonus.
		bonus := math.Log10(float64(v.SubscriberCount)) / 6.0
		score += s.SubscriberBonus * clamp01(bonus)
	}

	return score
}

// recency decays from 1.0 for a brand-new upload toward 0 with a
// half-life of 180 days.
func (s *WeightedScorer) recency(published time.Time) float64 {
	if published.IsZero() {
		return 0
	}
	ageDays := s.now().Sub(published).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp2(-ageDays / 180)
}

// popularity maps view counts onto [0, 1] on a log10 scale, saturating at
// ten million views.
func (s *WeightedScorer) popularity(views int64) float64 {
	if views <= 0 {
		return 0
	}
	return clamp01(math.Log10(float64(views)) / 7.0)
}

// durationFit prefers mid-length videos: full score between 4 and 20
// minutes, tapering off for shorts and multi-hour uploads.
func (s *WeightedScorer) durationFit(seconds int) float64 {
	const (
		lo = 4 * 60
		hi = 20 * 60
	)
	switch {
	case seconds <= 0:
		return 0
	case seconds < lo:
		return float64(seconds) / float64(lo)
	case seconds <= hi:
		return 1
	default:
		// Linear falloff reaching zero at two hours.
		over := float64(seconds-hi) / float64(2*3600-hi)
		return clamp01(1 - over)
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
