package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogscout/internal/core"
	"blogscout/internal/enrich"
	"blogscout/internal/insights"
	"blogscout/internal/llm"
	"blogscout/internal/logger"
	"blogscout/internal/rank"
	"blogscout/internal/search"
	"blogscout/internal/video"
)

// Request carries everything a collection run needs from its caller.
type Request struct {
	// Title is the working title of the blog post being researched.
	Title string

	// SearchKeyword is the user-editable phrase used for the primary
	// article search.
	SearchKeyword string

	// MainKeyword, when distinct from SearchKeyword, fills the remaining
	// article quota with a second search.
	MainKeyword string

	// ContentType is free-form metadata forwarded to the prompts
	// (e.g. "tutorial", "comparison").
	ContentType string

	// Sink receives progress snapshots. Optional.
	Sink ProgressSink
}

// Result aggregates everything a completed run produced.
type Result struct {
	RunID string `json:"run_id"`

	ExpandedKeywords []string `json:"expanded_keywords"`

	Articles      []core.ArticleCandidate `json:"articles"`
	Videos        []core.VideoCandidate   `json:"videos"`
	ThinnedVideos []core.VideoCandidate   `json:"thinned_videos"`

	SelectedArticles []core.SelectedArticle `json:"selected_articles"`
	SelectedVideos   []core.SelectedVideo   `json:"selected_videos"`
	// FallbackSelection reports that positional fallback, not the model,
	// produced the selection.
	FallbackSelection bool `json:"fallback_selection"`

	EnrichedArticles []core.EnrichedArticle `json:"enriched_articles"`
	EnrichedVideos   []core.EnrichedVideo   `json:"enriched_videos"`

	ContentSummary string                `json:"content_summary"`
	SEOGuideline   insights.SEOGuideline `json:"seo_guideline"`

	ArticleCount int              `json:"article_count"`
	VideoCount   int              `json:"video_count"`
	Quality      core.DataQuality `json:"quality"`

	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`

	Stages []StageStatus `json:"stages"`
}

// Config holds collection run tunables.
type Config struct {
	ArticleQuota int
	VideoQuota   int
}

// DefaultConfig returns the default quotas.
func DefaultConfig() Config {
	return Config{
		ArticleQuota: search.DefaultArticleQuota,
		VideoQuota:   video.DefaultVideoQuota,
	}
}

// Pipeline sequences candidate collection, thinning, AI selection,
// enrichment and insight generation into one observable run.
type Pipeline struct {
	articles  search.Provider
	videos    video.Provider
	reranker  *rank.Reranker
	sequencer *enrich.Sequencer
	insights  *insights.Generator
	completer llm.Completer
	config    Config
}

// New creates a pipeline from its collaborators. completer is used for
// keyword expansion; reranker, sequencer and insights carry their own
// reasoning clients.
func New(articles search.Provider, videos video.Provider, reranker *rank.Reranker, sequencer *enrich.Sequencer, gen *insights.Generator, completer llm.Completer, config Config) *Pipeline {
	if config.ArticleQuota <= 0 {
		config.ArticleQuota = search.DefaultArticleQuota
	}
	if config.VideoQuota <= 0 {
		config.VideoQuota = video.DefaultVideoQuota
	}
	return &Pipeline{
		articles:  articles,
		videos:    videos,
		reranker:  reranker,
		sequencer: sequencer,
		insights:  gen,
		completer: completer,
		config:    config,
	}
}

// Run executes all nine stages. It returns either a complete Result or
// an error naming the stage that terminally failed; provider and
// reasoning failures are absorbed by per-stage fallbacks and never reach
// the caller.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()
	t := newTracker(req.Sink)

	result := &Result{
		RunID:     uuid.NewString(),
		StartedAt: started.UTC(),
	}

	run := func(stage Stage, fn func() (string, error)) error {
		t.start(stage)
		message, err := fn()
		if err != nil {
			t.fail(stage, err)
			return fmt.Errorf("stage %s: %w", stage, err)
		}
		t.complete(stage, message)
		return nil
	}

	runCtx := insights.RunContext{
		Title:       req.Title,
		Keyword:     req.SearchKeyword,
		ContentType: req.ContentType,
	}

	if err := run(StageKeywordExpansion, func() (string, error) {
		result.ExpandedKeywords = p.expandKeywords(ctx, req)
		return fmt.Sprintf("%d keywords", len(result.ExpandedKeywords)), nil
	}); err != nil {
		return nil, err
	}

	if err := run(StageArticleSearch, func() (string, error) {
		candidates, err := search.CollectArticles(ctx, p.articles, req.SearchKeyword, req.MainKeyword, p.config.ArticleQuota)
		if err != nil {
			var provErr *search.ProviderError
			if errors.As(err, &provErr) {
				// The run continues on the video pool alone.
				logger.Warn("article search unavailable, continuing without articles", "reason", err.Error())
				return "provider unavailable", nil
			}
			return "", err
		}
		result.Articles = candidates
		return fmt.Sprintf("%d candidates", len(candidates)), nil
	}); err != nil {
		return nil, err
	}

	if err := run(StageVideoSearch, func() (string, error) {
		query := req.SearchKeyword
		if len(result.ExpandedKeywords) > 0 {
			query = result.ExpandedKeywords[0]
		}
		candidates, err := p.videos.Search(ctx, query, p.config.VideoQuota)
		if err != nil {
			var provErr *video.ProviderError
			if errors.As(err, &provErr) {
				logger.Warn("video search unavailable, continuing without videos", "reason", err.Error())
				return "provider unavailable", nil
			}
			return "", err
		}
		result.Videos = candidates
		return fmt.Sprintf("%d candidates", len(candidates)), nil
	}); err != nil {
		return nil, err
	}

	if err := run(StageVideoThinning, func() (string, error) {
		result.ThinnedVideos = rank.Thin(result.Videos)
		return fmt.Sprintf("%d of %d kept", len(result.ThinnedVideos), len(result.Videos)), nil
	}); err != nil {
		return nil, err
	}

	if err := run(StageAISelection, func() (string, error) {
		target := rank.Target{Title: req.Title, Keyword: req.SearchKeyword, ContentType: req.ContentType}
		selection := p.reranker.Select(ctx, target, result.Articles, result.ThinnedVideos)
		result.SelectedArticles = selection.Articles
		result.SelectedVideos = selection.Videos
		result.FallbackSelection = selection.Fallback
		if selection.Fallback {
			return "positional fallback", nil
		}
		return fmt.Sprintf("%d articles, %d videos", len(selection.Articles), len(selection.Videos)), nil
	}); err != nil {
		return nil, err
	}

	if err := run(StageVideoEnrichment, func() (string, error) {
		result.EnrichedVideos = p.sequencer.EnrichVideos(ctx, result.SelectedVideos, func(done, total int) {
			t.progress(StageVideoEnrichment, fmt.Sprintf("%d/%d", done, total))
		})
		return fmt.Sprintf("%d videos", len(result.EnrichedVideos)), nil
	}); err != nil {
		return nil, err
	}

	if err := run(StageArticleEnrichment, func() (string, error) {
		result.EnrichedArticles = p.sequencer.EnrichArticles(ctx, result.SelectedArticles, func(done, total int) {
			t.progress(StageArticleEnrichment, fmt.Sprintf("%d/%d", done, total))
		})
		return fmt.Sprintf("%d articles", len(result.EnrichedArticles)), nil
	}); err != nil {
		return nil, err
	}

	if err := run(StageContentSummary, func() (string, error) {
		result.ContentSummary = p.insights.ContentSummary(ctx, runCtx, result.EnrichedArticles, result.EnrichedVideos)
		return "", nil
	}); err != nil {
		return nil, err
	}

	if err := run(StageSEOInsight, func() (string, error) {
		result.SEOGuideline = p.insights.SEOGuideline(ctx, runCtx, result.EnrichedArticles, result.EnrichedVideos)
		return "", nil
	}); err != nil {
		return nil, err
	}

	result.ArticleCount = len(result.Articles)
	result.VideoCount = len(result.Videos)
	result.Quality = core.QualityTier(result.ArticleCount + result.VideoCount)
	result.Elapsed = time.Since(started)
	result.Stages = t.snapshot()

	logger.Info("collection run finished",
		"run_id", result.RunID,
		"articles", result.ArticleCount,
		"videos", result.VideoCount,
		"quality", string(result.Quality),
		"elapsed", result.Elapsed.String())

	return result, nil
}

const keywordExpansionPrompt = `Suggest up to 3 short search phrases for researching a blog post.

Target title: %s
Primary keyword: %s

Respond with JSON only: {"phrases":["...","..."]}`

// expandKeywords asks the reasoning service for related search phrases.
// On any failure the original search keyword is used unchanged; this
// stage never blocks the run.
func (p *Pipeline) expandKeywords(ctx context.Context, req Request) []string {
	fallback := []string{req.SearchKeyword}

	raw, err := p.completer.Complete(ctx, fmt.Sprintf(keywordExpansionPrompt, req.Title, req.SearchKeyword))
	if err != nil {
		logger.Warn("keyword expansion failed, using original keyword", "reason", err.Error())
		return fallback
	}

	var parsed struct {
		Phrases []string `json:"phrases"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &parsed); err != nil {
		logger.Warn("keyword expansion response unusable, using original keyword")
		return fallback
	}

	var phrases []string
	for _, phrase := range parsed.Phrases {
		if phrase = strings.TrimSpace(phrase); phrase != "" {
			phrases = append(phrases, phrase)
		}
		if len(phrases) == 3 {
			break
		}
	}
	if len(phrases) == 0 {
		return fallback
	}
	return phrases
}
