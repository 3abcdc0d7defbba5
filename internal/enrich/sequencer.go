package enrich

import (
	"context"
	"errors"
	"fmt"

	"blogscout/internal/core"
	"blogscout/internal/llm"
	"blogscout/internal/logger"
)

const (
	// DefaultArticleLimit caps how many selected articles get full-text
	// extraction. Extraction is the most expensive step, so only the top
	// picks are enriched even when ten were selected.
	DefaultArticleLimit = 3

	// NoCaptionsText is recorded as the extracted text when a video
	// legitimately has no caption track. Success stays true in that case.
	NoCaptionsText = "no captions available for this video"
)

const captionSummaryPrompt = `Summarize the following video captions in 3-5 sentences.
Focus on concrete points a blog writer could reference.

Video title: %s

Captions:
%s`

// Maximum caption characters sent to the summarization call.
const captionPromptLimit = 12000

// Sequencer runs per-item enrichment over the AI-selected set. Items are
// processed one at a time to respect third-party rate limits; each item's
// failure is recorded on the item without aborting the loop.
type Sequencer struct {
	fulltext     FullTextExtractor
	captions     CaptionExtractor
	completer    llm.Completer
	limiter      RateLimiter
	articleLimit int
}

// NewSequencer creates a sequencer. A nil limiter means no pacing; an
// articleLimit of zero or less means DefaultArticleLimit.
func NewSequencer(fulltext FullTextExtractor, captions CaptionExtractor, completer llm.Completer, limiter RateLimiter, articleLimit int) *Sequencer {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	if articleLimit <= 0 {
		articleLimit = DefaultArticleLimit
	}
	return &Sequencer{
		fulltext:     fulltext,
		captions:     captions,
		completer:    completer,
		limiter:      limiter,
		articleLimit: articleLimit,
	}
}

// EnrichArticles extracts full text for the top selected articles. Only
// the first articleLimit items enter enrichment; each produces exactly
// one EnrichedArticle. onItem, when non-nil, is invoked after every item.
func (s *Sequencer) EnrichArticles(ctx context.Context, items []core.SelectedArticle, onItem func(done, total int)) []core.EnrichedArticle {
	if len(items) > s.articleLimit {
		items = items[:s.articleLimit]
	}

	enriched := make([]core.EnrichedArticle, 0, len(items))
	for i, item := range items {
		result := core.EnrichedArticle{SelectedArticle: item}

		text, err := s.fulltext.Extract(ctx, item.URL)
		if err != nil {
			logger.Warn("article extraction failed", "url", item.URL, "reason", err.Error())
			result.Error = err.Error()
		} else {
			result.ExtractedText = text
			result.Success = true
		}

		enriched = append(enriched, result)
		if onItem != nil {
			onItem(i+1, len(items))
		}
	}
	return enriched
}

// EnrichVideos extracts captions and generates a summary for every
// selected video, pacing summarization calls with the sequencer's rate
// limiter. A video without captions is still a success, carrying the
// NoCaptionsText sentinel instead of a transcript.
func (s *Sequencer) EnrichVideos(ctx context.Context, items []core.SelectedVideo, onItem func(done, total int)) []core.EnrichedVideo {
	enriched := make([]core.EnrichedVideo, 0, len(items))
	for i, item := range items {
		if i > 0 {
			if err := s.limiter.Wait(ctx); err != nil {
				logger.Warn("rate limiter interrupted", "reason", err.Error())
			}
		}

		result := core.EnrichedVideo{SelectedVideo: item}
		s.enrichVideo(ctx, &result)

		enriched = append(enriched, result)
		if onItem != nil {
			onItem(i+1, len(items))
		}
	}
	return enriched
}

func (s *Sequencer) enrichVideo(ctx context.Context, result *core.EnrichedVideo) {
	videoID, err := VideoIDFromURL(result.URL)
	if err != nil {
		result.Error = err.Error()
		return
	}

	captions, err := s.captions.Extract(ctx, videoID)
	if errors.Is(err, ErrNoCaptions) {
		result.CaptionText = NoCaptionsText
		result.Success = true
		return
	}
	if err != nil {
		logger.Warn("caption extraction failed", "video_id", videoID, "reason", err.Error())
		result.Error = err.Error()
		return
	}
	result.CaptionText = captions

	if len(captions) > captionPromptLimit {
		captions = captions[:captionPromptLimit]
	}
	summary, err := s.completer.Complete(ctx, fmt.Sprintf(captionSummaryPrompt, result.Title, captions))
	if err != nil {
		logger.Warn("caption summarization failed", "video_id", videoID, "reason", err.Error())
		result.Error = fmt.Sprintf("summarization failed: %v", err)
		return
	}

	result.Summary = summary
	result.Success = true
}
