package utils

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// FuzzyRank filters and orders names by how well they match the query,
// for the picker search boxes. Substring matches rank first, then close
// edit-distance matches. Index positions into the original slice are
// returned so callers can map back to full records.
func FuzzyRank(query string, names []string) []int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]int, len(names))
		for i := range names {
			out[i] = i
		}
		return out
	}

	type ranked struct {
		idx   int
		score float64
	}
	matches := make([]ranked, 0, len(names))
	for i, name := range names {
		n := strings.ToLower(name)
		if strings.Contains(n, q) {
			// Earlier and tighter substring hits score higher.
			matches = append(matches, ranked{idx: i, score: 2 - float64(strings.Index(n, q))/float64(len(n)+1)})
			continue
		}
		dist := levenshtein.ComputeDistance(q, n)
		maxLen := len(q)
		if len(n) > maxLen {
			maxLen = len(n)
		}
		sim := 1 - float64(dist)/float64(maxLen)
		if sim >= 0.5 {
			matches = append(matches, ranked{idx: i, score: sim})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})

	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.idx
	}
	return out
}
