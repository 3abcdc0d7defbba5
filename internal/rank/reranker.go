package rank

import (
	"context"
	"fmt"
	"strings"

	"blogscout/internal/core"
	"blogscout/internal/llm"
	"blogscout/internal/logger"
)

const (
	// MaxSelected is the hard cap per category, enforced by truncation.
	MaxSelected = 10

	// FallbackReason tags items chosen by positional fallback when the
	// reasoning service failed or returned an unusable response.
	FallbackReason = "automatic selection, AI analysis unavailable"
)

// Target carries the context the model ranks candidates against.
type Target struct {
	Title       string
	Keyword     string
	ContentType string
}

// Selection is the outcome of the AI selection step. Fallback reports
// whether the deterministic positional fallback produced it.
type Selection struct {
	Articles []core.SelectedArticle
	Videos   []core.SelectedVideo
	Fallback bool
}

// Reranker narrows combined candidate pools to the most relevant subset
// for a target title using a single reasoning-service call, then resolves
// the model's free-text picks back to the structured candidate records.
type Reranker struct {
	completer llm.Completer
}

// NewReranker creates a reranker backed by completer.
func NewReranker(completer llm.Completer) *Reranker {
	return &Reranker{completer: completer}
}

// Select runs the AI selection step. It never returns an error: a failed
// or unparsable completion degrades to the positional top-10 fallback so
// enrichment always has some input. Empty candidate pools yield an empty
// selection without calling the model.
func (r *Reranker) Select(ctx context.Context, target Target, articles []core.ArticleCandidate, videos []core.VideoCandidate) Selection {
	if len(articles) == 0 && len(videos) == 0 {
		return Selection{}
	}

	prompt := buildSelectionPrompt(target, articles, videos)

	raw, err := r.completer.Complete(ctx, prompt)
	if err != nil {
		logger.Warn("selection completion failed, using positional fallback",
			"articles", len(articles), "videos", len(videos))
		return fallbackSelection(articles, videos)
	}

	parsed, err := parseSelection(raw)
	if err != nil {
		logger.Warn("selection response unusable, using positional fallback", "reason", err.Error())
		return fallbackSelection(articles, videos)
	}

	return Selection{
		Articles: r.resolveArticles(parsed.Articles, articles),
		Videos:   r.resolveVideos(parsed.Videos, videos),
	}
}

// resolveArticles maps the model's article picks back to candidates.
// Resolved articles without a URL are dropped; they are useless for
// enrichment.
func (r *Reranker) resolveArticles(items []aiItem, pool []core.ArticleCandidate) []core.SelectedArticle {
	if len(pool) == 0 {
		return nil
	}

	titles := make([]string, len(pool))
	for i, c := range pool {
		titles[i] = c.Title
	}

	var selected []core.SelectedArticle
	for i, item := range items {
		if len(selected) >= MaxSelected {
			break
		}
		match := pool[resolveIndex(item.Title, titles, i)]
		if match.URL == "" {
			continue
		}
		selected = append(selected, core.SelectedArticle{
			Rank:            match.Rank,
			Title:           match.Title,
			URL:             match.URL,
			ProviderTag:     match.ProviderTag,
			RelevanceReason: item.Reason,
		})
	}
	return selected
}

// resolveVideos maps the model's video picks back to candidates. Videos
// keep the adapter's URL, so no URL-based dropping applies.
func (r *Reranker) resolveVideos(items []aiItem, pool []core.VideoCandidate) []core.SelectedVideo {
	if len(pool) == 0 {
		return nil
	}

	titles := make([]string, len(pool))
	for i, c := range pool {
		titles[i] = c.Title
	}

	var selected []core.SelectedVideo
	for i, item := range items {
		if len(selected) >= MaxSelected {
			break
		}
		match := pool[resolveIndex(item.Title, titles, i)]
		selected = append(selected, core.SelectedVideo{
			Title:           match.Title,
			ChannelName:     match.ChannelName,
			ViewCount:       match.ViewCount,
			DurationSeconds: match.DurationSeconds,
			PriorityScore:   match.PriorityScore,
			URL:             match.URL,
			RelevanceReason: item.Reason,
		})
	}
	return selected
}

// fallbackSelection takes the first MaxSelected original candidates per
// category, each tagged with the fixed fallback reason.
func fallbackSelection(articles []core.ArticleCandidate, videos []core.VideoCandidate) Selection {
	sel := Selection{Fallback: true}

	for _, c := range articles {
		if len(sel.Articles) >= MaxSelected {
			break
		}
		if c.URL == "" {
			continue
		}
		sel.Articles = append(sel.Articles, core.SelectedArticle{
			Rank:            c.Rank,
			Title:           c.Title,
			URL:             c.URL,
			ProviderTag:     c.ProviderTag,
			RelevanceReason: FallbackReason,
		})
	}

	for _, c := range videos {
		if len(sel.Videos) >= MaxSelected {
			break
		}
		sel.Videos = append(sel.Videos, core.SelectedVideo{
			Title:           c.Title,
			ChannelName:     c.ChannelName,
			ViewCount:       c.ViewCount,
			DurationSeconds: c.DurationSeconds,
			PriorityScore:   c.PriorityScore,
			URL:             c.URL,
			RelevanceReason: FallbackReason,
		})
	}

	return sel
}

// buildSelectionPrompt renders the combined prompt, or the article-only
// variant when no video candidates survived thinning. Selection semantics
// are identical in both modes.
func buildSelectionPrompt(target Target, articles []core.ArticleCandidate, videos []core.VideoCandidate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are selecting reference material for a blog post.\n\n")
	fmt.Fprintf(&b, "Target title: %s\n", target.Title)
	if target.Keyword != "" {
		fmt.Fprintf(&b, "Primary keyword: %s\n", target.Keyword)
	}
	if target.ContentType != "" {
		fmt.Fprintf(&b, "Content type: %s\n", target.ContentType)
	}

	b.WriteString("\nArticle candidates:\n")
	for i, c := range articles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Title)
	}

	if len(videos) > 0 {
		b.WriteString("\nVideo candidates:\n")
		for i, c := range videos {
			fmt.Fprintf(&b, "%d. %s (channel: %s, views: %d)\n", i+1, c.Title, c.ChannelName, c.ViewCount)
		}
	}

	fmt.Fprintf(&b, "\nPick the up to %d articles", MaxSelected)
	if len(videos) > 0 {
		fmt.Fprintf(&b, " and up to %d videos", MaxSelected)
	}
	b.WriteString(" most relevant to the target title, ordered most relevant first.\n")
	b.WriteString("For each pick give a one-sentence reason tied to the target title.\n\n")
	b.WriteString("Respond with JSON only, no commentary, in this exact shape:\n")
	if len(videos) > 0 {
		b.WriteString(`{"articles":[{"title":"...","reason":"..."}],"videos":[{"title":"...","reason":"..."}]}`)
	} else {
		b.WriteString(`{"articles":[{"title":"...","reason":"..."}]}`)
	}
	b.WriteString("\nUse the candidate titles verbatim.\n")

	return b.String()
}
