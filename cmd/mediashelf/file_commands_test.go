package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"mediashelf/internal/api"
)

func TestFmtCanonicalisesFile(t *testing.T) {
	env := setupCLITestEnv(t)
	path := filepath.Join(env.baseDir, "messy.txt")
	if err := os.WriteFile(path, []byte("# comment\ntitle=Heat | type=movie|year=1995\n\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := env.run(t, "fmt", path)
	if out != "type=movie|title=Heat|year=1995\n" {
		t.Fatalf("unexpected formatted output %q", out)
	}

	if _, _, err := runCLI(t, []string{"fmt", "--check", path}, env.configPath); err == nil {
		t.Fatal("expected --check to fail on a non-canonical file")
	}

	requireContains(t, env.run(t, "fmt", "-w", path), "Formatted 1 records")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "type=movie|title=Heat|year=1995\n" {
		t.Fatalf("unexpected rewritten file %q", data)
	}
	env.run(t, "fmt", "--check", path)
}

func TestImportExportRoundTrip(t *testing.T) {
	env := setupCLITestEnv(t)
	src := filepath.Join(env.baseDir, "import.txt")
	if err := os.WriteFile(src, []byte("type=movie|title=Heat|year=1995|rating=8.3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	requireContains(t, env.run(t, "import", src), "Imported 1 records into local storage")

	var resp api.ItemsResponse
	if err := json.Unmarshal([]byte(env.run(t, "list", "--json")), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Origin != "local" || len(resp.Items) != 1 || resp.Items[0].Title != "Heat" {
		t.Fatalf("expected imported catalog to win, got %+v", resp)
	}

	if out := env.run(t, "export", "-"); out != "type=movie|title=Heat|year=1995|rating=8.3\n" {
		t.Fatalf("unexpected export %q", out)
	}

	dest := filepath.Join(env.baseDir, "out", "catalog.txt")
	requireContains(t, env.run(t, "export", dest), "Exported 1 records from local catalog")
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "type=movie|title=Heat|year=1995|rating=8.3\n" {
		t.Fatalf("unexpected exported file %q", data)
	}
}

func TestSaveRequiresAdminSession(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLIWithInput(t, "type=movie|title=Heat\n", []string{"save", "-"}, env.configPath)
	if err == nil || err.Error() != errLoginRequired.Error() {
		t.Fatalf("expected login required, got %v", err)
	}

	env.login(t)
	out, _, err := runCLIWithInput(t, "type=movie|title=Heat\ntype=episode|title=Orphan\n", []string{"save", "-"}, env.configPath)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	requireContains(t, out, "Saved 2 records to local storage")
	requireContains(t, out, "[WARN] Line 2: Episodes must have a series")
	requireContains(t, env.run(t, "list", "--view", "list"), "2 of 2 items (local)")

	requireContains(t, env.run(t, "save", "--clear"), "Cleared locally saved catalog")
	requireContains(t, env.run(t, "list", "--view", "list"), "3 of 3 items (file)")
}
