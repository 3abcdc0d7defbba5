package rank

import "strings"

// resolveIndex maps a free-text title returned by the model back to an
// index in the original candidate title list. Matching rules, in order,
// first hit wins:
//
//  1. exact match on the normalized title
//  2. containment either way (handles truncation and light paraphrase)
//  3. the model's own position index, clamped into range
//
// With a non-empty title list the result is always a valid index; callers
// never get -1.
func resolveIndex(aiTitle string, titles []string, position int) int {
	norm := normalizeTitle(aiTitle)

	if norm != "" {
		for i, t := range titles {
			if normalizeTitle(t) == norm {
				return i
			}
		}
		for i, t := range titles {
			nt := normalizeTitle(t)
			if nt == "" {
				continue
			}
			if strings.Contains(nt, norm) || strings.Contains(norm, nt) {
				return i
			}
		}
	}

	return clamp(position, 0, len(titles)-1)
}

func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
