package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is the default Gemini model used for all completions.
	DefaultModel = "gemini-2.0-flash"

	// DefaultTemperature keeps selection and insight output stable
	// across runs.
	DefaultTemperature = 0.2
)

// ReasoningError wraps any failure of the generative service: transport,
// auth, timeout, or an empty/blocked response.
type ReasoningError struct {
	Op  string
	Err error
}

func (e *ReasoningError) Error() string {
	return fmt.Sprintf("reasoning service %s: %v", e.Op, e.Err)
}

func (e *ReasoningError) Unwrap() error {
	return e.Err
}

// Completer is the narrow contract the pipeline consumes: a single
// text-completion call. The pipeline owns all prompt construction and
// response parsing.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Client is a Gemini-backed Completer. It is a stateless request
// executor and safe for sequential reuse across pipeline stages.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a Gemini completion client.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required; set GEMINI_API_KEY or ai.gemini.api_key in config")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, modelName: modelName}, nil
}

// Complete runs a single text completion.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(DefaultTemperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &ReasoningError{Op: "complete", Err: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", &ReasoningError{Op: "complete", Err: err}
	}
	return text, nil
}

// Close releases resources held by the client.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// CleanJSONBlock removes markdown code fences that models wrap around
// JSON output.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
