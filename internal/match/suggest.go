package match

import (
	"sort"
	"strings"
)

// DefaultMinScore is the minimum normalized similarity for a candidate to be
// offered as a suggestion.
const DefaultMinScore = 0.5

// NormalizeIdent normalizes an identifier for fuzzy comparison: case-folded
// with separators (_, -, spaces) stripped, so "display_name" and "DisplayName"
// compare equal.
func NormalizeIdent(s string) string {
	var sb strings.Builder

	for _, r := range s {
		switch r {
		case '_', '-', ' ':
			continue
		}

		sb.WriteRune(unicodeLower(r))
	}

	return sb.String()
}

func unicodeLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}

	return r
}

// Score computes the similarity between two identifiers after normalization.
func Score(a, b string) float64 {
	return Similarity(NormalizeIdent(a), NormalizeIdent(b))
}

// Suggest ranks candidates by normalized similarity to name and returns up to
// limit candidates scoring at least DefaultMinScore, best first. Ties are
// broken alphabetically for deterministic output.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	ranked := make([]scored, 0, len(candidates))

	for _, c := range candidates {
		if s := Score(name, c); s >= DefaultMinScore {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]string, len(ranked))
	for i, r := range ranked {
		result[i] = r.name
	}

	return result
}
