// Package insights turns the enriched reference set into the two final
// pipeline outputs: a short content summary and an SEO guideline. Both
// generators follow the same shape: build a prompt, attempt a structured
// parse of the completion, and fall back to a deterministic default when
// the call fails or the output is unusable. They are order-independent
// and skip the model entirely when their input is empty.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"blogscout/internal/core"
	"blogscout/internal/llm"
	"blogscout/internal/logger"
)

// RunContext is the run metadata both generators embed in their prompts.
type RunContext struct {
	Title       string
	Keyword     string
	ContentType string
}

// SEOGuideline is the structured SEO recommendation for the target post.
type SEOGuideline struct {
	MinWords     int      `json:"min_words"`
	MaxWords     int      `json:"max_words"`
	HeadingCount int      `json:"heading_count"`
	Keywords     []string `json:"keywords"`
	Tone         string   `json:"tone"`
}

// DefaultSEOGuideline is the deterministic fallback used when the model
// call fails, returns unusable output, or there is no enriched data.
func DefaultSEOGuideline(keyword string) SEOGuideline {
	g := SEOGuideline{
		MinWords:     1500,
		MaxWords:     2500,
		HeadingCount: 6,
		Tone:         "informative",
	}
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		g.Keywords = []string{keyword}
	}
	return g
}

// Generator produces run-level insights from the enriched set.
type Generator struct {
	completer llm.Completer
}

// NewGenerator creates an insight generator backed by completer.
func NewGenerator(completer llm.Completer) *Generator {
	return &Generator{completer: completer}
}

const contentSummaryPrompt = `You are preparing research notes for a blog post.

Target title: %s
Primary keyword: %s

Reference material:
%s

Write a content summary of 4-6 sentences covering the angles the
references take and what the new post should add.

Respond with JSON only: {"summary":"..."}`

// ContentSummary generates a short textual summary of the collected
// references. With no enriched material it returns an empty string
// without calling the model; on any model or parse failure it returns a
// deterministic digest of the reference titles.
func (g *Generator) ContentSummary(ctx context.Context, run RunContext, articles []core.EnrichedArticle, videos []core.EnrichedVideo) string {
	material := referenceMaterial(articles, videos)
	if material == "" {
		return ""
	}

	raw, err := g.completer.Complete(ctx, fmt.Sprintf(contentSummaryPrompt, run.Title, run.Keyword, material))
	if err != nil {
		logger.Warn("content summary generation failed, using fallback", "reason", err.Error())
		return fallbackSummary(run, articles, videos)
	}

	var parsed struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &parsed); err != nil || strings.TrimSpace(parsed.Summary) == "" {
		logger.Warn("content summary response unusable, using fallback")
		return fallbackSummary(run, articles, videos)
	}

	return strings.TrimSpace(parsed.Summary)
}

const seoGuidelinePrompt = `You are defining SEO guidelines for a blog post.

Target title: %s
Primary keyword: %s
Content type: %s

Reference material:
%s

Recommend a word count range, a heading count, up to 8 keywords, and a
writing tone.

Respond with JSON only:
{"min_words":0,"max_words":0,"heading_count":0,"keywords":["..."],"tone":"..."}`

// SEOGuideline generates the SEO guideline object. Any failure path, and
// an empty enriched set, yield the deterministic default guideline.
func (g *Generator) SEOGuideline(ctx context.Context, run RunContext, articles []core.EnrichedArticle, videos []core.EnrichedVideo) SEOGuideline {
	material := referenceMaterial(articles, videos)
	if material == "" {
		return DefaultSEOGuideline(run.Keyword)
	}

	raw, err := g.completer.Complete(ctx, fmt.Sprintf(seoGuidelinePrompt, run.Title, run.Keyword, run.ContentType, material))
	if err != nil {
		logger.Warn("SEO guideline generation failed, using defaults", "reason", err.Error())
		return DefaultSEOGuideline(run.Keyword)
	}

	var parsed SEOGuideline
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &parsed); err != nil {
		logger.Warn("SEO guideline response unusable, using defaults")
		return DefaultSEOGuideline(run.Keyword)
	}

	return sanitizeGuideline(parsed, run.Keyword)
}

// sanitizeGuideline backfills nonsensical model output with defaults so
// callers never see a zero or inverted range.
func sanitizeGuideline(g SEOGuideline, keyword string) SEOGuideline {
	defaults := DefaultSEOGuideline(keyword)
	if g.MinWords <= 0 {
		g.MinWords = defaults.MinWords
	}
	if g.MaxWords <= g.MinWords {
		g.MaxWords = g.MinWords + (defaults.MaxWords - defaults.MinWords)
	}
	if g.HeadingCount <= 0 {
		g.HeadingCount = defaults.HeadingCount
	}
	if len(g.Keywords) == 0 {
		g.Keywords = defaults.Keywords
	}
	if strings.TrimSpace(g.Tone) == "" {
		g.Tone = defaults.Tone
	}
	return g
}

// referenceMaterial renders the enriched set for prompting. Failed items
// contribute their title only; successful ones add a content excerpt.
func referenceMaterial(articles []core.EnrichedArticle, videos []core.EnrichedVideo) string {
	var b strings.Builder

	for _, a := range articles {
		fmt.Fprintf(&b, "- [article] %s", a.Title)
		if a.Success && a.ExtractedText != "" {
			fmt.Fprintf(&b, ": %s", excerpt(a.ExtractedText, 400))
		}
		b.WriteString("\n")
	}
	for _, v := range videos {
		fmt.Fprintf(&b, "- [video] %s (%s)", v.Title, v.ChannelName)
		if v.Success && v.Summary != "" {
			fmt.Fprintf(&b, ": %s", excerpt(v.Summary, 400))
		}
		b.WriteString("\n")
	}

	return strings.TrimSpace(b.String())
}

// fallbackSummary is the deterministic content summary: a plain digest
// of what was collected, derived from titles alone.
func fallbackSummary(run RunContext, articles []core.EnrichedArticle, videos []core.EnrichedVideo) string {
	var titles []string
	for _, a := range articles {
		titles = append(titles, a.Title)
	}
	for _, v := range videos {
		titles = append(titles, v.Title)
	}
	if len(titles) > 5 {
		titles = titles[:5]
	}
	return fmt.Sprintf("Collected %d article and %d video references for %q. Key sources: %s.",
		len(articles), len(videos), run.Title, strings.Join(titles, "; "))
}

func excerpt(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
