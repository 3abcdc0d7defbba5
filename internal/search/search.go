package search

import (
	"context"

	"blogscout/internal/core"
)

// Provider defines the contract for article search providers. A provider
// returns its results already ranked (1-based) and never fails on an
// empty result set; only transport or auth problems produce an error,
// always wrapped in *ProviderError.
type Provider interface {
	// Search returns at most limit ranked article candidates for query.
	Search(ctx context.Context, query string, limit int) ([]core.ArticleCandidate, error)

	// GetName returns the name of the search provider.
	GetName() string
}

// ProviderType represents the type of search provider.
type ProviderType string

const (
	ProviderTypeSerpAPI ProviderType = "serpapi"
	ProviderTypeMock    ProviderType = "mock"
)

// NewProvider creates an article search provider of the specified type.
func NewProvider(providerType ProviderType, config map[string]string) (Provider, error) {
	switch providerType {
	case ProviderTypeSerpAPI:
		apiKey, exists := config["api_key"]
		if !exists || apiKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewSerpAPIProvider(apiKey), nil
	case ProviderTypeMock:
		return NewMockProvider(), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
