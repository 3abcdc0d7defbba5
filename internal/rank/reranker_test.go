package rank

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"blogscout/internal/core"
	"blogscout/internal/llm"
)

func articlePool(n int) []core.ArticleCandidate {
	pool := make([]core.ArticleCandidate, n)
	for i := 0; i < n; i++ {
		pool[i] = core.ArticleCandidate{
			Rank:        i + 1,
			Title:       fmt.Sprintf("Original Article %d", i+1),
			URL:         fmt.Sprintf("https://example.com/%d", i+1),
			ProviderTag: "Mock",
		}
	}
	return pool
}

func videoPool(n int) []core.VideoCandidate {
	pool := make([]core.VideoCandidate, n)
	for i := 0; i < n; i++ {
		pool[i] = core.VideoCandidate{
			Title:         fmt.Sprintf("Original Video %d", i+1),
			ChannelName:   "Channel",
			URL:           fmt.Sprintf("https://www.youtube.com/watch?v=vid%08d", i+1),
			PriorityScore: 1 - float64(i)/float64(n),
		}
	}
	return pool
}

func TestResolveIndexExactMatch(t *testing.T) {
	titles := []string{"Alpha Piece", "Beta Piece", "Gamma Piece"}
	if got := resolveIndex("  beta piece ", titles, 0); got != 1 {
		t.Errorf("exact match resolved to %d, want 1", got)
	}
}

func TestResolveIndexContainment(t *testing.T) {
	titles := []string{"Alpha Piece", "A Very Long Beta Piece Title", "Gamma Piece"}

	// Model truncated the original title.
	if got := resolveIndex("Beta Piece Title", titles, 0); got != 1 {
		t.Errorf("truncation containment resolved to %d, want 1", got)
	}
	// Model expanded the original title.
	if got := resolveIndex("Gamma Piece (2025 edition)", titles, 0); got != 2 {
		t.Errorf("expansion containment resolved to %d, want 2", got)
	}
}

func TestResolveIndexPositionalClamp(t *testing.T) {
	titles := []string{"Alpha", "Beta", "Gamma"}

	tests := []struct {
		position int
		want     int
	}{
		{0, 0},
		{2, 2},
		{7, 2},  // past the end clamps to the last index
		{-3, 0}, // negative clamps to the first index
	}
	for _, tt := range tests {
		if got := resolveIndex("completely unrelated text", titles, tt.position); got != tt.want {
			t.Errorf("resolveIndex(position=%d) = %d, want %d", tt.position, got, tt.want)
		}
	}
}

func TestSelectResolvesAndCaps(t *testing.T) {
	// 12 picks against a 12-item pool: the cap must truncate to 10.
	response := `{"articles":[`
	for i := 1; i <= 12; i++ {
		if i > 1 {
			response += ","
		}
		response += fmt.Sprintf(`{"title":"Original Article %d","reason":"reason %d"}`, i, i)
	}
	response += `]}`

	r := NewReranker(&llm.MockCompleter{Responses: []string{response}})
	sel := r.Select(context.Background(), Target{Title: "topic"}, articlePool(12), nil)

	if sel.Fallback {
		t.Fatal("expected a model-driven selection, got fallback")
	}
	if len(sel.Articles) != MaxSelected {
		t.Fatalf("expected cap of %d articles, got %d", MaxSelected, len(sel.Articles))
	}
	if sel.Articles[0].URL != "https://example.com/1" {
		t.Errorf("first pick resolved to wrong record: %s", sel.Articles[0].URL)
	}
	if sel.Articles[0].RelevanceReason != "reason 1" {
		t.Errorf("relevance reason not carried over: %q", sel.Articles[0].RelevanceReason)
	}
}

func TestSelectDropsArticlesWithoutURL(t *testing.T) {
	pool := articlePool(3)
	pool[1].URL = ""

	response := `{"articles":[{"title":"Original Article 2","reason":"r"},{"title":"Original Article 3","reason":"r"}]}`
	r := NewReranker(&llm.MockCompleter{Responses: []string{response}})
	sel := r.Select(context.Background(), Target{Title: "topic"}, pool, nil)

	if len(sel.Articles) != 1 {
		t.Fatalf("expected URL-less article dropped, got %d selected", len(sel.Articles))
	}
	for _, a := range sel.Articles {
		if a.URL == "" {
			t.Error("selected article emitted with empty URL")
		}
	}
}

func TestSelectCombinedMode(t *testing.T) {
	response := `{"articles":[{"title":"Original Article 1","reason":"ra"}],"videos":[{"title":"Original Video 2","reason":"rv"}]}`
	r := NewReranker(&llm.MockCompleter{Responses: []string{response}})
	sel := r.Select(context.Background(), Target{Title: "topic"}, articlePool(3), videoPool(3))

	if len(sel.Articles) != 1 || len(sel.Videos) != 1 {
		t.Fatalf("expected 1 article and 1 video, got %d/%d", len(sel.Articles), len(sel.Videos))
	}
	if sel.Videos[0].URL != "https://www.youtube.com/watch?v=vid00000002" {
		t.Errorf("video resolved to wrong record: %s", sel.Videos[0].URL)
	}
}

func TestSelectFallbackOnCompleterError(t *testing.T) {
	r := NewReranker(&llm.MockCompleter{Err: errors.New("service unavailable")})
	sel := r.Select(context.Background(), Target{Title: "topic"}, articlePool(15), videoPool(15))

	if !sel.Fallback {
		t.Fatal("expected fallback selection")
	}
	if len(sel.Articles) != MaxSelected || len(sel.Videos) != MaxSelected {
		t.Fatalf("fallback should take first %d per category, got %d/%d",
			MaxSelected, len(sel.Articles), len(sel.Videos))
	}
	for i, a := range sel.Articles {
		if a.Rank != i+1 {
			t.Errorf("fallback article %d has rank %d, want original order preserved", i, a.Rank)
		}
		if a.RelevanceReason != FallbackReason {
			t.Errorf("fallback article missing fixed reason: %q", a.RelevanceReason)
		}
	}
}

func TestSelectFallbackOnUnparsableResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose", "I think the best articles are the first three."},
		{"broken json", `{"articles":[{"title":`},
		{"empty object", `{}`},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReranker(&llm.MockCompleter{Responses: []string{tt.response}})
			sel := r.Select(context.Background(), Target{Title: "topic"}, articlePool(3), nil)
			if !sel.Fallback {
				t.Fatal("expected fallback selection")
			}
			if len(sel.Articles) != 3 {
				t.Errorf("expected all 3 candidates in fallback, got %d", len(sel.Articles))
			}
		})
	}
}

func TestSelectEmptyPoolsSkipModel(t *testing.T) {
	mock := &llm.MockCompleter{Responses: []string{`{"articles":[]}`}}
	r := NewReranker(mock)
	sel := r.Select(context.Background(), Target{Title: "topic"}, nil, nil)

	if len(sel.Articles) != 0 || len(sel.Videos) != 0 || sel.Fallback {
		t.Error("empty pools should yield an empty, non-fallback selection")
	}
	if len(mock.Prompts) != 0 {
		t.Error("model must not be called for empty pools")
	}
}

func TestBuildSelectionPromptModes(t *testing.T) {
	combined := buildSelectionPrompt(Target{Title: "t"}, articlePool(2), videoPool(2))
	articleOnly := buildSelectionPrompt(Target{Title: "t"}, articlePool(2), nil)

	if !strings.Contains(combined, "Video candidates:") {
		t.Error("combined prompt missing video section")
	}
	if strings.Contains(articleOnly, "Video candidates:") {
		t.Error("article-only prompt should not mention videos")
	}
}
