package video

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"blogscout/internal/core"
	"blogscout/internal/logger"
)

// YouTubeProvider implements Provider using the YouTube Data API v3.
// Each search costs three API calls: search.list for the candidate set,
// videos.list for statistics and durations, channels.list for subscriber
// counts.
type YouTubeProvider struct {
	service *youtube.Service
	scorer  Scorer
}

// NewYouTubeProvider creates a YouTube video provider.
func NewYouTubeProvider(ctx context.Context, apiKey string, scorer Scorer) (*YouTubeProvider, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	if scorer == nil {
		scorer = NewWeightedScorer()
	}
	return &YouTubeProvider{service: service, scorer: scorer}, nil
}

// GetName returns the name of this provider.
func (p *YouTubeProvider) GetName() string {
	return "YouTube"
}

// Search returns up to limit video candidates for query, each scored by
// the provider's scoring strategy.
func (p *YouTubeProvider) Search(ctx context.Context, query string, limit int) ([]core.VideoCandidate, error) {
	if limit <= 0 || limit > DefaultVideoQuota {
		limit = DefaultVideoQuota
	}

	searchResp, err := p.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("relevance").
		MaxResults(int64(limit)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &ProviderError{Provider: p.GetName(), Err: fmt.Errorf("search.list failed: %w", err)}
	}
	if len(searchResp.Items) == 0 {
		return nil, nil
	}

	var videoIDs, channelIDs []string
	channelSeen := make(map[string]bool)
	for _, item := range searchResp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		videoIDs = append(videoIDs, item.Id.VideoId)
		if item.Snippet != nil && !channelSeen[item.Snippet.ChannelId] {
			channelSeen[item.Snippet.ChannelId] = true
			channelIDs = append(channelIDs, item.Snippet.ChannelId)
		}
	}

	videosResp, err := p.service.Videos.List([]string{"statistics", "contentDetails"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &ProviderError{Provider: p.GetName(), Err: fmt.Errorf("videos.list failed: %w", err)}
	}

	type videoStats struct {
		views    int64
		duration int
	}
	statsByID := make(map[string]videoStats, len(videosResp.Items))
	for _, item := range videosResp.Items {
		stats := videoStats{}
		if item.Statistics != nil {
			stats.views = int64(item.Statistics.ViewCount)
		}
		if item.ContentDetails != nil {
			stats.duration = parseISO8601Duration(item.ContentDetails.Duration)
		}
		statsByID[item.Id] = stats
	}

	subscribers := p.fetchSubscriberCounts(ctx, channelIDs)

	var candidates []core.VideoCandidate
	for _, item := range searchResp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		stats := statsByID[item.Id.VideoId]

		candidate := core.VideoCandidate{
			Title:           item.Snippet.Title,
			ChannelName:     item.Snippet.ChannelTitle,
			ViewCount:       stats.views,
			DurationSeconds: stats.duration,
			SubscriberCount: subscribers[item.Snippet.ChannelId],
			PublishedAt:     publishedAt,
			URL:             "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		}
		candidate.PriorityScore = p.scorer.Score(candidate)
		candidates = append(candidates, candidate)
	}

	logger.Info("YouTube search completed", "query", query, "results_found", len(candidates))

	return candidates, nil
}

// fetchSubscriberCounts looks up subscriber counts per channel. Failures
// here are not fatal; the scorer treats missing counts as unknown.
func (p *YouTubeProvider) fetchSubscriberCounts(ctx context.Context, channelIDs []string) map[string]int64 {
	counts := make(map[string]int64, len(channelIDs))
	if len(channelIDs) == 0 {
		return counts
	}

	resp, err := p.service.Channels.List([]string{"statistics"}).
		Id(channelIDs...).
		Context(ctx).
		Do()
	if err != nil {
		logger.Warn("channels.list failed, continuing without subscriber counts", "channels", len(channelIDs))
		return counts
	}

	for _, ch := range resp.Items {
		if ch.Statistics == nil || ch.Statistics.HiddenSubscriberCount {
			continue
		}
		counts[ch.Id] = int64(ch.Statistics.SubscriberCount)
	}
	return counts
}

var iso8601DurationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISO8601Duration converts a YouTube contentDetails duration such as
// "PT1H2M3S" into seconds. Unparsable input yields zero.
func parseISO8601Duration(s string) int {
	matches := iso8601DurationRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0
	}
	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])
	return hours*3600 + minutes*60 + seconds
}
