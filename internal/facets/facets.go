// Package facets derives the distinct filter choices offered for a catalog.
package facets

import (
	"slices"

	"mediashelf/internal/catalog"
)

// Meta lists the distinct values found across a catalog, each sorted
// ascending.
type Meta struct {
	Genres   []string `json:"genres"`
	Tags     []string `json:"tags"`
	Statuses []string `json:"statuses"`
	Years    []string `json:"years"`
}

// Extract collects genres, tags, statuses and years from records. List
// fields are split on commas and trimmed; a piece that trims to empty is
// kept as "" (use Compact to drop it).
func Extract(records []catalog.Record) Meta {
	genres := newSet()
	tags := newSet()
	statuses := newSet()
	years := newSet()
	for _, rec := range records {
		genres.add(rec.GenreList()...)
		tags.add(rec.TagList()...)
		if rec.Status != "" {
			statuses.add(rec.Status)
		}
		if rec.Year != "" {
			years.add(rec.Year)
		}
	}
	return Meta{
		Genres:   genres.sorted(),
		Tags:     tags.sorted(),
		Statuses: statuses.sorted(),
		Years:    years.sorted(),
	}
}

// Compact returns a copy of m without empty entries.
func (m Meta) Compact() Meta {
	return Meta{
		Genres:   dropEmpty(m.Genres),
		Tags:     dropEmpty(m.Tags),
		Statuses: dropEmpty(m.Statuses),
		Years:    dropEmpty(m.Years),
	}
}

type set map[string]struct{}

func newSet() set { return make(set) }

func (s set) add(values ...string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func dropEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
