package core

import "time"

// ArticleCandidate is a raw blog-article reference returned by a search
// provider, before any AI ranking has happened.
type ArticleCandidate struct {
	Rank        int    `json:"rank"`         // 1-based position, global across merged queries
	Title       string `json:"title"`        // Result title as returned by the provider
	URL         string `json:"url"`          // Landing page URL
	ProviderTag string `json:"provider_tag"` // Which provider produced this result
}

// VideoCandidate is a raw video reference returned by a video search
// provider. PriorityScore is assigned by the provider's scoring strategy
// and is the sole sort key used by thinning.
type VideoCandidate struct {
	Title           string    `json:"title"`
	ChannelName     string    `json:"channel_name"`
	ViewCount       int64     `json:"view_count"`
	DurationSeconds int       `json:"duration_seconds"`
	SubscriberCount int64     `json:"subscriber_count"` // 0 when the channel hides it
	PublishedAt     time.Time `json:"published_at"`
	URL             string    `json:"url"`
	PriorityScore   float64   `json:"priority_score"`
}

// SelectedArticle is an article candidate that survived AI selection,
// together with the model's justification. URL is always non-empty;
// candidates that cannot be resolved to a URL are dropped during
// selection, never emitted.
type SelectedArticle struct {
	Rank            int    `json:"rank"`
	Title           string `json:"title"`
	URL             string `json:"url"`
	ProviderTag     string `json:"provider_tag"`
	RelevanceReason string `json:"relevance_reason"`
}

// SelectedVideo is a video candidate that survived AI selection.
type SelectedVideo struct {
	Title           string  `json:"title"`
	ChannelName     string  `json:"channel_name"`
	ViewCount       int64   `json:"view_count"`
	DurationSeconds int     `json:"duration_seconds"`
	PriorityScore   float64 `json:"priority_score"`
	URL             string  `json:"url"`
	RelevanceReason string  `json:"relevance_reason"`
}

// EnrichedArticle is a selected article after full-text extraction.
// A failed extraction keeps the item with Success false and a non-empty
// Error; enrichment never removes items.
type EnrichedArticle struct {
	SelectedArticle
	ExtractedText string `json:"extracted_text"`
	Success       bool   `json:"success"`
	Error         string `json:"error,omitempty"`
}

// EnrichedVideo is a selected video after caption extraction and
// summarization. CaptionText holds the cleaned transcript (or a sentinel
// explanation when the video legitimately has no captions), Summary the
// generated digest of it.
type EnrichedVideo struct {
	SelectedVideo
	CaptionText string `json:"caption_text"`
	Summary     string `json:"summary"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// DataQuality is a coarse tier derived from how many raw sources a
// collection run gathered.
type DataQuality string

const (
	DataQualityLow    DataQuality = "low"    // fewer than 5 raw sources
	DataQualityMedium DataQuality = "medium" // fewer than 10 raw sources
	DataQualityHigh   DataQuality = "high"
)

// QualityTier maps a total raw source count to its quality tier.
func QualityTier(sourceCount int) DataQuality {
	switch {
	case sourceCount < 5:
		return DataQualityLow
	case sourceCount < 10:
		return DataQualityMedium
	default:
		return DataQualityHigh
	}
}
