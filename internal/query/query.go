// Package query filters and orders catalog records for display.
//
// Filtering always runs before sorting, the input slice is never mutated, and
// sorting is stable so records with equal keys keep their file order.
package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"mediashelf/internal/catalog"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortTitle  SortKey = "title"
	SortYear   SortKey = "year"
	SortRating SortKey = "rating"
)

// ParseSortKey maps user input onto a SortKey. Unknown or empty values fall
// back to SortTitle.
func ParseSortKey(value string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(value))) {
	case SortYear:
		return SortYear
	case SortRating:
		return SortRating
	default:
		return SortTitle
	}
}

// Filter holds the active predicates. Empty fields are inactive; active
// predicates are ANDed.
type Filter struct {
	// Search is matched case-insensitively against title, series, genres and tags.
	Search string `json:"search,omitempty"`
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
	// Genre and Tag are substring checks against the raw comma-separated field.
	Genre string `json:"genre,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether rec passes every active predicate.
func (f Filter) Match(rec catalog.Record) bool {
	if f.Search != "" {
		haystack := strings.ToLower(rec.Title + " " + rec.Series + " " + rec.Genres + " " + rec.Tags)
		if !strings.Contains(haystack, strings.ToLower(f.Search)) {
			return false
		}
	}
	if f.Type != "" && rec.Type != f.Type {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.Genre != "" && !strings.Contains(rec.Genres, f.Genre) {
		return false
	}
	if f.Tag != "" && !strings.Contains(rec.Tags, f.Tag) {
		return false
	}
	return true
}

// Engine applies filters and locale-aware ordering. The zero value sorts
// with the root collation.
type Engine struct {
	tag language.Tag
}

// NewEngine returns an engine that orders text using the given BCP 47 locale.
// Unparseable locales fall back to the root collation.
func NewEngine(locale string) *Engine {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.Und
	}
	return &Engine{tag: tag}
}

// Locale returns the collation locale in use.
func (e *Engine) Locale() language.Tag {
	if e == nil {
		return language.Und
	}
	return e.tag
}

// Filter returns the records matching f in input order.
func (e *Engine) Filter(records []catalog.Record, f Filter) []catalog.Record {
	out := make([]catalog.Record, 0, len(records))
	for _, rec := range records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Sort returns a stably sorted copy of records.
func (e *Engine) Sort(records []catalog.Record, key SortKey) []catalog.Record {
	out := slices.Clone(records)
	// Collators keep scratch buffers, so each call gets its own.
	col := collate.New(e.Locale())
	var compare func(a, b catalog.Record) int
	switch key {
	case SortYear:
		compare = func(a, b catalog.Record) int {
			return col.CompareString(orDefault(b.Year, "0"), orDefault(a.Year, "0"))
		}
	case SortRating:
		compare = func(a, b catalog.Record) int {
			return cmp.Compare(catalog.NumberOrZero(b.Rating), catalog.NumberOrZero(a.Rating))
		}
	default:
		compare = func(a, b catalog.Record) int {
			return col.CompareString(displayTitle(a), displayTitle(b))
		}
	}
	slices.SortStableFunc(out, compare)
	return out
}

// Apply filters then sorts, returning a new slice.
func (e *Engine) Apply(records []catalog.Record, f Filter, key SortKey) []catalog.Record {
	return e.Sort(e.Filter(records, f), key)
}

// Apply runs the filter and sort pipeline with the root collation.
func Apply(records []catalog.Record, f Filter, key SortKey) []catalog.Record {
	var e Engine
	return e.Apply(records, f, key)
}

func displayTitle(rec catalog.Record) string {
	if rec.Series != "" {
		return rec.Series
	}
	return rec.Title
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
