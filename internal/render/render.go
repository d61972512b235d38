// Package render draws catalog records for the terminal as card grids, list
// tables, and a detail view.
package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"mediashelf/internal/catalog"
)

// EmptyMessage is printed when there is nothing to show.
const EmptyMessage = "No items found"

// View selects between the card grid and the list table.
type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

// ParseView maps s onto a View, defaulting to grid.
func ParseView(s string) View {
	if strings.EqualFold(strings.TrimSpace(s), string(ViewList)) {
		return ViewList
	}
	return ViewGrid
}

// Items renders records in the requested view. width is the terminal width
// used to lay out cards.
func Items(w io.Writer, records []catalog.Record, view View, width int) error {
	if view == ViewList {
		return List(w, records)
	}
	return Grid(w, records, width)
}

func writeEmpty(w io.Writer) error {
	_, err := fmt.Fprintln(w, EmptyMessage)
	return err
}

// Stars renders a 0-10 rating as ten filled or empty stars. Blank or
// non-numeric ratings render as "".
func Stars(rating string) string {
	if strings.TrimSpace(rating) == "" {
		return ""
	}
	n, ok := catalog.ParseNumber(rating)
	if !ok || math.IsNaN(n) {
		return ""
	}
	filled := int(math.Max(0, math.Min(10, math.Floor(n+0.5))))
	return strings.Repeat("★", filled) + strings.Repeat("☆", 10-filled)
}

// StatusLabel title-cases a status value for display.
func StatusLabel(status string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(status, "-", " "))
}

// CardTitle is the heading of a card: "Series S1E2" for episodes.
func CardTitle(rec catalog.Record) string {
	if rec.Series != "" {
		return fmt.Sprintf("%s S%sE%s", rec.Series, rec.Season, rec.Episode)
	}
	return rec.Title
}

// CardSubtitle is the episode title for episodes and the year otherwise.
func CardSubtitle(rec catalog.Record) string {
	if rec.Series != "" {
		return rec.Title
	}
	return rec.Year
}

// ListTitle is the list row heading: "Series S1E2: Title" for episodes.
func ListTitle(rec catalog.Record) string {
	if rec.Series != "" {
		return fmt.Sprintf("%s S%sE%s: %s", rec.Series, rec.Season, rec.Episode, rec.Title)
	}
	return rec.Title
}

// DetailTitle is the detail heading: "Series - S1E2: Title" for episodes.
func DetailTitle(rec catalog.Record) string {
	if rec.Series != "" {
		return fmt.Sprintf("%s - S%sE%s: %s", rec.Series, rec.Season, rec.Episode, rec.Title)
	}
	return rec.Title
}

// Badges lists the type badge and, when set, the status badge.
func Badges(rec catalog.Record) string {
	badges := "[" + rec.Type + "]"
	if rec.Status != "" {
		badges += " [" + StatusLabel(rec.Status) + "]"
	}
	return badges
}
