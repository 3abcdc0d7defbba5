package llm

import (
	"context"
	"errors"
)

// MockCompleter is a canned Completer for tests and offline runs. It
// replays Responses in order, or fails every call with Err.
type MockCompleter struct {
	Responses []string
	Err       error

	// Prompts records every prompt received, in order.
	Prompts []string

	next int
}

// Complete returns the next canned response.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if m.next >= len(m.Responses) {
		return "", &ReasoningError{Op: "complete", Err: errors.New("mock: no more canned responses")}
	}
	resp := m.Responses[m.next]
	m.next++
	return resp, nil
}
