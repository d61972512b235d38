package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleCatalog is a small catalog covering both record types, escaping and extras.
const SampleCatalog = `# test catalog
type=movie|title=Inception|year=2010|genres=Sci-Fi, Thriller|tags=heist|rating=8.8|status=watched|runtime=148
type=episode|series=Breaking Bad|season=1|episode=1|title=Pilot|year=2008|genres=Drama, Crime|rating=9|status=watched
type=movie|title=Dune|year=2021|genres=Sci-Fi|rating=8|status=planned|summary=Spice \| sand|source=import
`

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
