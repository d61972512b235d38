package catalog_test

import (
	"math"
	"slices"
	"testing"

	"mediashelf/internal/catalog"
)

func TestRecordKeyComposesTitleYearSeries(t *testing.T) {
	rec := catalog.Record{Title: "Pilot", Year: "2008", Series: "Breaking Bad"}
	if got := rec.Key(); got != "Pilot-2008-Breaking Bad" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := (catalog.Record{Title: "Heat"}).Key(); got != "Heat--" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRecordSetRoutesUnknownKeysToExtras(t *testing.T) {
	var rec catalog.Record
	rec.Set("title", "Heat")
	rec.Set("director", "Mann")
	if rec.Title != "Heat" || rec.Get("director") != "Mann" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !catalog.IsCanonical("summary") || catalog.IsCanonical("director") {
		t.Fatal("unexpected canonical classification")
	}
}

func TestRecordEqualTreatsNilAndEmptyExtrasAlike(t *testing.T) {
	a := catalog.Record{Type: "movie", Title: "A"}
	b := catalog.Record{Type: "movie", Title: "A", Extras: map[string]string{}}
	if !a.Equal(b) {
		t.Fatal("expected records to be equal")
	}
	b.Extras["k"] = "v"
	if a.Equal(b) {
		t.Fatal("expected extras difference to matter")
	}
}

func TestRecordCloneCopiesExtras(t *testing.T) {
	a := catalog.Record{Type: "movie", Extras: map[string]string{"k": "v"}}
	b := a.Clone()
	b.Extras["k"] = "changed"
	if a.Extras["k"] != "v" {
		t.Fatal("clone shares extras map")
	}
}

func TestGenreListTrimsPieces(t *testing.T) {
	rec := catalog.Record{Genres: " Sci-Fi , Thriller,,Drama"}
	want := []string{"Sci-Fi", "Thriller", "", "Drama"}
	if got := rec.GenreList(); !slices.Equal(got, want) {
		t.Fatalf("unexpected genres %q", got)
	}
	if got := (catalog.Record{}).TagList(); got != nil {
		t.Fatalf("expected nil tags, got %q", got)
	}
}

func TestCanonicalKeysOrder(t *testing.T) {
	want := []string{"type", "title", "series", "season", "episode", "year", "genres", "tags", "rating", "status", "runtime", "link", "image", "summary"}
	if got := catalog.CanonicalKeys(); !slices.Equal(got, want) {
		t.Fatalf("unexpected order %q", got)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"8.8", 8.8, true},
		{" 10 ", 10, true},
		{"", 0, true},
		{"   ", 0, true},
		{"-1", -1, true},
		{"+2.5", 2.5, true},
		{".5", 0.5, true},
		{"5.", 5, true},
		{"1e1", 10, true},
		{"0x10", 16, true},
		{"0b11", 3, true},
		{"0o17", 15, true},
		{"2010", 2010, true},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"1_000", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"0x", 0, false},
		{"-0x10", 0, false},
		{"1e", 0, false},
		{".", 0, false},
	}
	for _, tc := range tests {
		got, ok := catalog.ParseNumber(tc.in)
		if ok != tc.ok {
			t.Fatalf("ParseNumber(%q) ok=%v want %v", tc.in, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseNumber(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
	if got, ok := catalog.ParseNumber("Infinity"); !ok || !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf, got %v %v", got, ok)
	}
	if got := catalog.NumberOrZero("n/a"); got != 0 {
		t.Fatalf("expected zero fallback, got %v", got)
	}
}
