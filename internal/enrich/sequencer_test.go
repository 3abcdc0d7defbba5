package enrich

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"blogscout/internal/core"
	"blogscout/internal/llm"
)

// stubFullText fails for URLs listed in failures.
type stubFullText struct {
	failures map[string]error
	calls    []string
}

func (s *stubFullText) Extract(ctx context.Context, url string) (string, error) {
	s.calls = append(s.calls, url)
	if err := s.failures[url]; err != nil {
		return "", err
	}
	return "extracted body for " + url, nil
}

// stubCaptions returns canned captions per video ID.
type stubCaptions struct {
	captions map[string]string
	errs     map[string]error
}

func (s *stubCaptions) Extract(ctx context.Context, videoID string) (string, error) {
	if err := s.errs[videoID]; err != nil {
		return "", err
	}
	return s.captions[videoID], nil
}

// countingLimiter records how often Wait was called.
type countingLimiter struct {
	waits int
}

func (c *countingLimiter) Wait(ctx context.Context) error {
	c.waits++
	return nil
}

func selectedArticles(n int) []core.SelectedArticle {
	out := make([]core.SelectedArticle, n)
	for i := 0; i < n; i++ {
		out[i] = core.SelectedArticle{
			Rank:            i + 1,
			Title:           fmt.Sprintf("Article %d", i+1),
			URL:             fmt.Sprintf("https://example.com/%d", i+1),
			RelevanceReason: "relevant",
		}
	}
	return out
}

func selectedVideos(ids ...string) []core.SelectedVideo {
	out := make([]core.SelectedVideo, len(ids))
	for i, id := range ids {
		out[i] = core.SelectedVideo{
			Title: "Video " + id,
			URL:   "https://www.youtube.com/watch?v=" + id,
		}
	}
	return out
}

func TestEnrichArticlesIsolatesFailures(t *testing.T) {
	extractor := &stubFullText{failures: map[string]error{
		"https://example.com/2": errors.New("connection reset"),
	}}
	seq := NewSequencer(extractor, nil, nil, NopLimiter{}, 3)

	got := seq.EnrichArticles(context.Background(), selectedArticles(3), nil)

	if len(got) != 3 {
		t.Fatalf("expected 3 enriched items, got %d", len(got))
	}
	if !got[0].Success || !got[2].Success {
		t.Error("items 1 and 3 should succeed")
	}
	if got[1].Success {
		t.Error("item 2 should be marked failed")
	}
	if got[1].Error == "" {
		t.Error("failed item must carry a non-empty error")
	}
	if got[0].ExtractedText == "" {
		t.Error("successful item must carry extracted text")
	}
}

func TestEnrichArticlesHonorsLimit(t *testing.T) {
	extractor := &stubFullText{}
	seq := NewSequencer(extractor, nil, nil, NopLimiter{}, 3)

	got := seq.EnrichArticles(context.Background(), selectedArticles(10), nil)

	if len(got) != 3 {
		t.Fatalf("expected only top 3 articles enriched, got %d", len(got))
	}
	if len(extractor.calls) != 3 {
		t.Errorf("expected 3 extraction calls, got %d", len(extractor.calls))
	}
}

func TestEnrichArticlesReportsProgress(t *testing.T) {
	seq := NewSequencer(&stubFullText{}, nil, nil, NopLimiter{}, 3)

	var updates []int
	seq.EnrichArticles(context.Background(), selectedArticles(2), func(done, total int) {
		updates = append(updates, done)
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
	})

	if len(updates) != 2 || updates[0] != 1 || updates[1] != 2 {
		t.Errorf("expected per-item progress updates [1 2], got %v", updates)
	}
}

func TestEnrichVideosSummarizesCaptions(t *testing.T) {
	captions := &stubCaptions{captions: map[string]string{
		"aaaaaaaaaaa": "full transcript text",
	}}
	completer := &llm.MockCompleter{Responses: []string{"a crisp summary"}}
	seq := NewSequencer(nil, captions, completer, NopLimiter{}, 0)

	got := seq.EnrichVideos(context.Background(), selectedVideos("aaaaaaaaaaa"), nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 enriched video, got %d", len(got))
	}
	if !got[0].Success {
		t.Fatalf("expected success, got error %q", got[0].Error)
	}
	if got[0].CaptionText != "full transcript text" || got[0].Summary != "a crisp summary" {
		t.Errorf("caption/summary not carried: %q / %q", got[0].CaptionText, got[0].Summary)
	}
}

func TestEnrichVideosNoCaptionsSentinel(t *testing.T) {
	captions := &stubCaptions{errs: map[string]error{
		"bbbbbbbbbbb": ErrNoCaptions,
	}}
	completer := &llm.MockCompleter{}
	seq := NewSequencer(nil, captions, completer, NopLimiter{}, 0)

	got := seq.EnrichVideos(context.Background(), selectedVideos("bbbbbbbbbbb"), nil)

	if !got[0].Success {
		t.Error("missing captions is not a failure")
	}
	if got[0].CaptionText != NoCaptionsText {
		t.Errorf("expected sentinel caption text, got %q", got[0].CaptionText)
	}
	if len(completer.Prompts) != 0 {
		t.Error("summarization must be skipped without captions")
	}
}

func TestEnrichVideosIsolatesFailures(t *testing.T) {
	captions := &stubCaptions{
		captions: map[string]string{
			"aaaaaaaaaaa": "transcript a",
			"ccccccccccc": "transcript c",
		},
		errs: map[string]error{
			"bbbbbbbbbbb": errors.New("caption endpoint down"),
		},
	}
	completer := &llm.MockCompleter{Responses: []string{"summary a", "summary c"}}
	seq := NewSequencer(nil, captions, completer, NopLimiter{}, 0)

	got := seq.EnrichVideos(context.Background(), selectedVideos("aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc"), nil)

	if len(got) != 3 {
		t.Fatalf("expected 3 enriched videos, got %d", len(got))
	}
	if !got[0].Success || !got[2].Success {
		t.Error("videos 1 and 3 should succeed")
	}
	if got[1].Success || got[1].Error == "" {
		t.Error("video 2 should fail with a non-empty error")
	}
}

func TestEnrichVideosSummarizationFailureKeepsCaptions(t *testing.T) {
	captions := &stubCaptions{captions: map[string]string{"aaaaaaaaaaa": "transcript"}}
	completer := &llm.MockCompleter{Err: errors.New("rate limited")}
	seq := NewSequencer(nil, captions, completer, NopLimiter{}, 0)

	got := seq.EnrichVideos(context.Background(), selectedVideos("aaaaaaaaaaa"), nil)

	if got[0].Success {
		t.Error("failed summarization should mark the item failed")
	}
	if got[0].Error == "" {
		t.Error("failed item must carry a non-empty error")
	}
	if got[0].CaptionText != "transcript" {
		t.Error("captions extracted before the failure should be kept")
	}
}

func TestEnrichVideosPacesBetweenItems(t *testing.T) {
	captions := &stubCaptions{captions: map[string]string{
		"aaaaaaaaaaa": "a", "bbbbbbbbbbb": "b", "ccccccccccc": "c",
	}}
	completer := &llm.MockCompleter{Responses: []string{"s", "s", "s"}}
	limiter := &countingLimiter{}
	seq := NewSequencer(nil, captions, completer, limiter, 0)

	seq.EnrichVideos(context.Background(), selectedVideos("aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc"), nil)

	if limiter.waits != 2 {
		t.Errorf("expected 2 inter-item waits for 3 items, got %d", limiter.waits)
	}
}

func TestEnrichVideosBadURL(t *testing.T) {
	seq := NewSequencer(nil, &stubCaptions{}, &llm.MockCompleter{}, NopLimiter{}, 0)

	got := seq.EnrichVideos(context.Background(), []core.SelectedVideo{{Title: "weird", URL: "https://example.com/notyoutube"}}, nil)

	if got[0].Success || got[0].Error == "" {
		t.Error("unparsable video URL should produce a failed item with an error")
	}
}
