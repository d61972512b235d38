package facets_test

import (
	"slices"
	"testing"

	"mediashelf/internal/catalog"
	"mediashelf/internal/facets"
)

func TestExtractGenresTrimmedDedupedSorted(t *testing.T) {
	meta := facets.Extract([]catalog.Record{{Genres: "A, B"}, {Genres: "B,C"}})
	if want := []string{"A", "B", "C"}; !slices.Equal(meta.Genres, want) {
		t.Fatalf("genres = %q want %q", meta.Genres, want)
	}
}

func TestExtractAllFacets(t *testing.T) {
	records := catalog.Parse(`type=movie|title=Inception|year=2010|genres=Sci-Fi,Thriller|tags=mind-bending, heist|status=watched
type=movie|title=Dune|year=2021|genres=Sci-Fi|tags=desert|status=planned
type=episode|series=BB|season=1|episode=1|title=Pilot|year=2008|status=watched`)

	meta := facets.Extract(records)
	checks := []struct {
		name string
		got  []string
		want []string
	}{
		{"genres", meta.Genres, []string{"Sci-Fi", "Thriller"}},
		{"tags", meta.Tags, []string{"desert", "heist", "mind-bending"}},
		{"statuses", meta.Statuses, []string{"planned", "watched"}},
		{"years", meta.Years, []string{"2008", "2010", "2021"}},
	}
	for _, c := range checks {
		if !slices.Equal(c.got, c.want) {
			t.Fatalf("%s = %q want %q", c.name, c.got, c.want)
		}
	}
}

func TestExtractKeepsEmptyPiecesUntilCompacted(t *testing.T) {
	meta := facets.Extract([]catalog.Record{{Genres: "Drama,,Crime, "}})
	if want := []string{"", "Crime", "Drama"}; !slices.Equal(meta.Genres, want) {
		t.Fatalf("genres = %q want %q", meta.Genres, want)
	}
	if want := []string{"Crime", "Drama"}; !slices.Equal(meta.Compact().Genres, want) {
		t.Fatalf("compact genres = %q want %q", meta.Compact().Genres, want)
	}
}

func TestExtractEmptyCatalog(t *testing.T) {
	meta := facets.Extract(nil)
	if len(meta.Genres)+len(meta.Tags)+len(meta.Statuses)+len(meta.Years) != 0 {
		t.Fatalf("expected empty meta, got %+v", meta)
	}
	if meta.Genres == nil {
		t.Fatal("expected non-nil slices for JSON output")
	}
}
