package rank

import (
	"encoding/json"
	"errors"
	"fmt"

	"blogscout/internal/llm"
)

// aiItem is one selected reference in the model's response.
type aiItem struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// aiSelection is the structured shape the selection prompt asks for.
type aiSelection struct {
	Articles []aiItem `json:"articles"`
	Videos   []aiItem `json:"videos"`
}

// parseSelection attempts to parse the raw model output into the expected
// structure. Any failure here sends the caller down the deterministic
// fallback path; a parse error is never surfaced past the selection step.
func parseSelection(raw string) (*aiSelection, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if cleaned == "" {
		return nil, errors.New("empty selection response")
	}

	var sel aiSelection
	if err := json.Unmarshal([]byte(cleaned), &sel); err != nil {
		return nil, fmt.Errorf("unparsable selection response: %w", err)
	}
	if len(sel.Articles) == 0 && len(sel.Videos) == 0 {
		return nil, errors.New("selection response named no items")
	}

	return &sel, nil
}
