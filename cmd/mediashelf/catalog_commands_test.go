package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediashelf/internal/api"
)

func TestListViews(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "list", "--view", "list")
	requireContains(t, out, "TITLE")
	requireContains(t, out, "Breaking Bad S1E1: Pilot")
	requireContains(t, out, "3 of 3 items (file)")

	out = env.run(t, "list", "--view", "grid", "--width", "200")
	requireContains(t, out, "Breaking Bad S1E1")
	requireContains(t, out, "[episode] [Watched]")

	out = env.run(t, "list", "--search", "nothing-matches")
	requireContains(t, out, "No items found")
}

func TestListJSONAppliesFiltersAndSort(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "list", "--json", "--genre", "Sci-Fi", "--sort", "rating")
	var resp api.ItemsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v (%s)", err, out)
	}
	if resp.Total != 3 || len(resp.Items) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Items[0].Title != "Inception" || resp.Items[1].Title != "Dune" {
		t.Fatalf("expected rating order, got %q then %q", resp.Items[0].Title, resp.Items[1].Title)
	}
}

func TestSavedViewIsUsedByList(t *testing.T) {
	env := setupCLITestEnv(t)

	requireContains(t, env.run(t, "view"), "View: grid")
	requireContains(t, env.run(t, "view", "list"), "View: list")
	requireContains(t, env.run(t, "list"), "TITLE")
	requireContains(t, env.run(t, "view", "toggle"), "View: grid")

	if _, _, err := runCLI(t, []string{"view", "carousel"}, env.configPath); err == nil {
		t.Fatal("expected unknown view to fail")
	}
}

func TestShowPicksBestMatch(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "show", "inception")
	requireContains(t, out, "148 min")
	requireContains(t, out, "8.8/10")

	out = env.run(t, "show", "breaking", "pilot")
	requireContains(t, out, "Breaking Bad - S1E1: Pilot")

	out = env.run(t, "show", "dune")
	requireContains(t, out, "Spice | sand")

	if _, _, err := runCLI(t, []string{"show", "zzz"}, env.configPath); err == nil || !strings.Contains(err.Error(), "no item matches") {
		t.Fatalf("expected no match error, got %v", err)
	}
}

func TestMetaListsFacets(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "meta")
	requireContains(t, out, "Crime, Drama, Sci-Fi, Thriller")
	requireContains(t, out, "planned, watched")

	var meta api.MetaResponse
	if err := json.Unmarshal([]byte(env.run(t, "meta", "--json")), &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if strings.Join(meta.Years, ",") != "2008,2010,2021" || meta.Origin != "file" {
		t.Fatalf("unexpected meta %+v", meta)
	}
}

func TestValidateReportsDiagnostics(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.run(t, "validate")
	requireContains(t, out, "Data is valid (3 records)")

	bad := filepath.Join(env.baseDir, "bad.txt")
	if err := os.WriteFile(bad, []byte("type=movie|year=soon\ntype=show|title=X\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, _, err := runCLI(t, []string{"validate", bad}, env.configPath)
	if err == nil || err.Error() != "3 error(s) found" {
		t.Fatalf("expected 3 errors, got %v", err)
	}
	requireContains(t, out, "Line 1:")
	requireContains(t, out, "[ERROR] Missing title")
	requireContains(t, out, "[ERROR] Year must be numeric")
	requireContains(t, out, `[ERROR] Invalid type "show" (must be "movie" or "episode")`)

	out, _, _ = runCLI(t, []string{"validate", "--json", bad}, env.configPath)
	var resp api.ValidateResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Valid || len(resp.Messages) != 3 || resp.Messages[0] != "Line 1: Missing title" {
		t.Fatalf("unexpected response %+v", resp)
	}
}
