package rank

import (
	"sort"

	"blogscout/internal/core"
)

// Thin reduces a raw video pool to a bounded candidate set before the
// expensive AI selection call. The rule is relative to pool size:
//
//	n >= 15      keep floor(n * 0.7)
//	10 <= n < 15 keep exactly 10
//	n < 10       keep all
//
// The result is sorted descending by PriorityScore. Thin is pure; the
// input slice is not modified.
func Thin(pool []core.VideoCandidate) []core.VideoCandidate {
	sorted := make([]core.VideoCandidate, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriorityScore > sorted[j].PriorityScore
	})

	n := len(sorted)
	switch {
	case n >= 15:
		return sorted[:n*7/10]
	case n >= 10:
		return sorted[:10]
	default:
		return sorted
	}
}
