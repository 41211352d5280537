package match

import "sort"

// suggestThreshold is the minimum normalized similarity for a candidate to
// be offered as a suggestion.
const suggestThreshold = 0.5

// Suggest returns up to limit candidates ranked by similarity to input,
// filtered to those plausibly intended. Ties break alphabetically so output
// is deterministic.
func Suggest(input string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	ranked := make([]scored, 0, len(candidates))

	for _, c := range candidates {
		score := LevenshteinNormalized(input, c)
		if score >= suggestThreshold {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := make([]string, len(ranked))
	for i, r := range ranked {
		result[i] = r.name
	}

	return result
}
