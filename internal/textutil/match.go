package textutil

import (
	"slices"
	"strings"
)

// Match is one ranked candidate.
type Match struct {
	Index int
	Score float64
}

// Exact returns the index of the first candidate equal to query after
// folding and whitespace trimming, or -1.
func Exact(query string, candidates []string) int {
	want := strings.TrimSpace(Fold(query))
	if want == "" {
		return -1
	}
	for i, c := range candidates {
		if strings.TrimSpace(Fold(c)) == want {
			return i
		}
	}
	return -1
}

// Rank scores every candidate against query and returns those with a
// positive score, best first. Equal scores keep candidate order.
func Rank(query string, candidates []string) []Match {
	q := NewFingerprint(query)
	if q == nil {
		return nil
	}
	prints := make([]*Fingerprint, len(candidates))
	corpus := NewCorpus()
	for i, c := range candidates {
		prints[i] = NewFingerprint(c)
		corpus.Add(prints[i])
	}
	idf := corpus.IDF()
	q = q.WithIDF(idf)

	var matches []Match
	for i, fp := range prints {
		if score := CosineSimilarity(q, fp.WithIDF(idf)); score > 0 {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return matches
}
