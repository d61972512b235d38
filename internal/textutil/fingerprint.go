package textutil

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fingerprint is a weighted term vector for one piece of text.
type Fingerprint struct {
	tokens map[string]float64
	norm   float64
}

// Fold lowercases text and strips combining marks, so "Amélie" folds to
// "amelie".
func Fold(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// Tokenize folds text and splits it on anything that is not a letter or
// digit. Single-character tokens are dropped unless they are digits.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 && !unicode.IsDigit([]rune(f)[0]) {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// NewFingerprint builds a fingerprint from text. It returns nil when text
// yields no tokens.
func NewFingerprint(text string) *Fingerprint {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return newFingerprint(counts)
}

func newFingerprint(weights map[string]float64) *Fingerprint {
	var sum float64
	for _, w := range weights {
		sum += w * w
	}
	return &Fingerprint{tokens: weights, norm: math.Sqrt(sum)}
}

// TokenCount returns the number of distinct tokens.
func (f *Fingerprint) TokenCount() int {
	if f == nil {
		return 0
	}
	return len(f.tokens)
}

// WithIDF returns a copy weighted by idf. Terms missing from idf keep their
// raw weight. Returns nil if every weight drops to zero.
func (f *Fingerprint) WithIDF(idf map[string]float64) *Fingerprint {
	if f == nil || len(idf) == 0 {
		return f
	}
	weighted := make(map[string]float64, len(f.tokens))
	for token, count := range f.tokens {
		w := count
		if v, ok := idf[token]; ok {
			w *= v
		}
		if w != 0 {
			weighted[token] = w
		}
	}
	if len(weighted) == 0 {
		return nil
	}
	return newFingerprint(weighted)
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0
// when either is nil or empty.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, w := range a.tokens {
		dot += w * b.tokens[token]
	}
	return dot / (a.norm * b.norm)
}

// Corpus counts how many documents contain each term.
type Corpus struct {
	docs    int
	docFreq map[string]int
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{docFreq: make(map[string]int)}
}

// Add registers the distinct terms of fp.
func (c *Corpus) Add(fp *Fingerprint) {
	if c == nil || fp == nil {
		return
	}
	c.docs++
	for token := range fp.tokens {
		c.docFreq[token]++
	}
}

// IDF returns smoothed weights log((N+1)/df) + 1 for each term, so a term
// present in every document still carries weight 1.
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docs == 0 {
		return nil
	}
	idf := make(map[string]float64, len(c.docFreq))
	n := float64(c.docs)
	for term, df := range c.docFreq {
		idf[term] = math.Log((n+1)/float64(df)) + 1
	}
	return idf
}
