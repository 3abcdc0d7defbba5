package search

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned when a required API key is not provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnsupportedProvider is returned when an unsupported provider type is specified.
	ErrUnsupportedProvider = errors.New("unsupported search provider")
)

// ProviderError wraps a transport or auth failure from a search provider.
// Zero results is not an error; providers return an empty slice for that.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("search provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
