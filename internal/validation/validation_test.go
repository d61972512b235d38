package validation_test

import (
	"slices"
	"testing"

	"mediashelf/internal/catalog"
	"mediashelf/internal/validation"
)

func TestEpisodeMissingSeriesSeasonEpisodeYieldsThreeDiagnostics(t *testing.T) {
	diags := validation.Validate([]catalog.Record{{Type: "episode", Title: "Pilot"}})
	if len(diags) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d: %v", len(diags), diags)
	}
	fields := []string{diags[0].Field, diags[1].Field, diags[2].Field}
	if !slices.Equal(fields, []string{"series", "season", "episode"}) {
		t.Fatalf("unexpected fields %q", fields)
	}
}

func TestValidCatalogHasNoDiagnostics(t *testing.T) {
	records := catalog.Parse(`type=movie|title=Inception|year=2010|rating=8.8
type=episode|series=Breaking Bad|season=1|episode=1|title=Pilot|year=2008|rating=10
type=movie|title=Zero|rating=0`)
	if diags := validation.Validate(records); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestMessagesAccumulateAcrossRecords(t *testing.T) {
	records := []catalog.Record{
		{Title: "No type"},
		{Type: "series", Title: "Bad type"},
		{Type: "movie"},
		{Type: "movie", Title: "Year", Year: "20x0"},
		{Type: "movie", Title: "High", Rating: "11"},
		{Type: "movie", Title: "Low", Rating: "-0.5"},
		{Type: "movie", Title: "Word", Rating: "great"},
	}
	want := []string{
		"Line 1: Missing type",
		`Line 2: Invalid type "series" (must be "movie" or "episode")`,
		"Line 3: Missing title",
		"Line 4: Year must be numeric",
		"Line 5: Rating must be a number between 0 and 10",
		"Line 6: Rating must be a number between 0 and 10",
		"Line 7: Rating must be a number between 0 and 10",
	}
	if got := validation.Messages(records); !slices.Equal(got, want) {
		t.Fatalf("unexpected messages:\n got %q\nwant %q", got, want)
	}
}

func TestSingleRecordCanReportSeveralViolations(t *testing.T) {
	diags := validation.Validate([]catalog.Record{{Type: "episode", Year: "soon", Rating: "12"}})
	// title, series, season, episode, year, rating
	if len(diags) != 6 {
		t.Fatalf("expected 6 diagnostics, got %d: %v", len(diags), diags)
	}
	for _, d := range diags {
		if d.Line != 1 {
			t.Fatalf("unexpected line %d", d.Line)
		}
	}
}

func TestRatingBoundsAreInclusive(t *testing.T) {
	for _, rating := range []string{"0", "10", "10.0", " 5 "} {
		if diags := validation.Validate([]catalog.Record{{Type: "movie", Title: "x", Rating: rating}}); len(diags) != 0 {
			t.Fatalf("rating %q: unexpected diagnostics %v", rating, diags)
		}
	}
}
