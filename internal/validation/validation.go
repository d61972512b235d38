// Package validation checks catalog records against the editing rules and
// reports human-readable diagnostics.
//
// Validation is advisory. Nothing in the save, export or commit paths
// consults it; callers show the diagnostics and let the user decide.
package validation

import (
	"fmt"

	"mediashelf/internal/catalog"
)

// Diagnostic is a single rule violation. Line is the 1-based position of the
// record within the validated sequence.
type Diagnostic struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the diagnostic as "Line N: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("Line %d: %s", d.Line, d.Message)
}

// Validate checks every record and returns all violations in record order.
// An empty result means the catalog is valid.
func Validate(records []catalog.Record) []Diagnostic {
	var diags []Diagnostic
	for i, rec := range records {
		diags = append(diags, checkRecord(i+1, rec)...)
	}
	return diags
}

// Messages is Validate rendered as strings.
func Messages(records []catalog.Record) []string {
	diags := Validate(records)
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.String()
	}
	return out
}

func checkRecord(line int, rec catalog.Record) []Diagnostic {
	var diags []Diagnostic
	report := func(field, message string) {
		diags = append(diags, Diagnostic{Line: line, Field: field, Message: message})
	}

	switch rec.Type {
	case "":
		report(catalog.FieldType, "Missing type")
	case catalog.TypeMovie, catalog.TypeEpisode:
	default:
		report(catalog.FieldType, fmt.Sprintf("Invalid type %q (must be %q or %q)", rec.Type, catalog.TypeMovie, catalog.TypeEpisode))
	}

	if rec.Title == "" {
		report(catalog.FieldTitle, "Missing title")
	}

	if rec.IsEpisode() {
		if rec.Series == "" {
			report(catalog.FieldSeries, "Episodes must have a series")
		}
		if rec.Season == "" {
			report(catalog.FieldSeason, "Episodes must have a season number")
		}
		if rec.Episode == "" {
			report(catalog.FieldEpisode, "Episodes must have an episode number")
		}
	}

	if rec.Year != "" {
		if _, ok := catalog.ParseNumber(rec.Year); !ok {
			report(catalog.FieldYear, "Year must be numeric")
		}
	}

	if rec.Rating != "" {
		rating, ok := catalog.ParseNumber(rec.Rating)
		if !ok || rating < 0 || rating > 10 {
			report(catalog.FieldRating, "Rating must be a number between 0 and 10")
		}
	}
	return diags
}
