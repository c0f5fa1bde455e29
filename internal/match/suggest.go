package match

import (
	"slices"
	"strings"
)

// DefaultThreshold is the minimum similarity Suggest accepts.
const DefaultThreshold = 0.6

// Candidate is a known name scored against the requested one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name and sorts them by descending
// score, then by name.
func Rank(name string, candidates []string) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Candidate{Name: c, Score: NormalizedSimilarity(name, c)})
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return strings.Compare(a.Name, b.Name)
		}
	})

	return out
}

// Suggest returns the candidate most similar to name when its score reaches
// threshold.
func Suggest(name string, candidates []string, threshold float64) (string, bool) {
	ranked := Rank(name, candidates)
	if len(ranked) == 0 || ranked[0].Score < threshold {
		return "", false
	}

	return ranked[0].Name, true
}
