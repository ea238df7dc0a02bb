package match

import (
	"sort"
	"strings"
)

// Normalize lowercases s and drops '-', '_', '.' and spaces.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '.', ' ':
			return -1
		}

		return r
	}, strings.ToLower(s))
}

// Suggest returns the candidates whose normalized similarity to input is at
// least minScore, best first. Ties keep candidate order.
func Suggest(input string, candidates []string, minScore float64) []string {
	type scored struct {
		name  string
		score float64
	}

	norm := Normalize(input)

	var ranked []scored

	for _, c := range candidates {
		s := Similarity(norm, Normalize(c))
		if s >= minScore {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.name)
	}

	return out
}
