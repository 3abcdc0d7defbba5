package video

import (
	"context"
	"errors"
	"fmt"

	"blogscout/internal/core"
)

// DefaultVideoQuota is the maximum number of raw video candidates
// gathered per collection run.
const DefaultVideoQuota = 50

var (
	// ErrMissingAPIKey is returned when a required API key is not provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnsupportedProvider is returned when an unsupported provider type is specified.
	ErrUnsupportedProvider = errors.New("unsupported video provider")
)

// ProviderError wraps a transport or auth failure from a video provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("video provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Provider defines the contract for video search providers. Candidates
// come back pre-scored; PriorityScore is the only sort key downstream
// thinning relies on.
type Provider interface {
	// Search returns at most limit video candidates for query.
	Search(ctx context.Context, query string, limit int) ([]core.VideoCandidate, error)

	// GetName returns the name of the video provider.
	GetName() string
}

// Scorer assigns a priority score to a raw video candidate. The pipeline
// treats the formula as opaque; swapping strategies must not require any
// change outside the provider.
type Scorer interface {
	Score(v core.VideoCandidate) float64
}

// ProviderType represents the type of video provider.
type ProviderType string

const (
	ProviderTypeYouTube ProviderType = "youtube"
	ProviderTypeMock    ProviderType = "mock"
)

// NewProvider creates a video provider of the specified type, scoring
// candidates with scorer (nil means the default weighted scorer).
func NewProvider(ctx context.Context, providerType ProviderType, config map[string]string, scorer Scorer) (Provider, error) {
	if scorer == nil {
		scorer = NewWeightedScorer()
	}
	switch providerType {
	case ProviderTypeYouTube:
		apiKey, exists := config["api_key"]
		if !exists || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewYouTubeProvider(ctx, apiKey, scorer)
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
