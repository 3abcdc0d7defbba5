package search

import (
	"context"
	"strings"

	"blogscout/internal/core"
	"blogscout/internal/logger"
)

// DefaultArticleQuota is the maximum number of article candidates
// gathered per collection run.
const DefaultArticleQuota = 50

// CollectArticles gathers up to quota article candidates. It searches with
// searchKeyword first; if that leaves part of the quota unfilled and a
// distinct mainKeyword exists, a second search fills the remainder with
// ranks continuing from where the first search stopped. Identical keywords
// skip the second search. Ranks are never renumbered afterwards, so the
// merged list stays gapless and strictly increasing.
func CollectArticles(ctx context.Context, provider Provider, searchKeyword, mainKeyword string, quota int) ([]core.ArticleCandidate, error) {
	if quota <= 0 {
		quota = DefaultArticleQuota
	}

	primary, err := provider.Search(ctx, searchKeyword, quota)
	if err != nil {
		return nil, err
	}

	merged := renumber(primary, 0)

	remaining := quota - len(merged)
	mainKeyword = strings.TrimSpace(mainKeyword)
	if remaining <= 0 || mainKeyword == "" || strings.EqualFold(mainKeyword, strings.TrimSpace(searchKeyword)) {
		return merged, nil
	}

	secondary, err := provider.Search(ctx, mainKeyword, remaining)
	if err != nil {
		// The primary results are still usable on their own.
		logger.Warn("secondary keyword search failed, keeping primary results",
			"keyword", mainKeyword, "primary_count", len(merged))
		return merged, nil
	}

	merged = append(merged, renumber(secondary, len(merged))...)
	return merged, nil
}

// renumber rewrites ranks so candidates continue the global sequence
// starting after offset.
func renumber(candidates []core.ArticleCandidate, offset int) []core.ArticleCandidate {
	out := make([]core.ArticleCandidate, len(candidates))
	for i, c := range candidates {
		c.Rank = offset + i + 1
		out[i] = c
	}
	return out
}
