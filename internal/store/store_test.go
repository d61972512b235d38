package store_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"mediashelf/internal/store"
	"mediashelf/internal/testsupport"
)

func exerciseBackend(t *testing.T, b store.Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Get(ctx, store.KeyCatalogData); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := b.Set(ctx, store.KeyCatalogData, "type=movie|title=A"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := b.Set(ctx, store.KeyCatalogData, "type=movie|title=B"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err := b.Get(ctx, store.KeyCatalogData)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "type=movie|title=B" {
		t.Fatalf("expected last write to win, got %q", got)
	}

	if err := b.Set(ctx, store.KeyCatalogSHA, ""); err != nil {
		t.Fatalf("Set empty: %v", err)
	}
	value, ok, err := store.Lookup(ctx, b, store.KeyCatalogSHA)
	if err != nil || !ok || value != "" {
		t.Fatalf("Lookup empty value = %q %v %v", value, ok, err)
	}

	if err := b.Delete(ctx, store.KeyCatalogData, store.KeyCatalogSHA, "missing"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, err := store.Lookup(ctx, b, store.KeyCatalogData); err != nil || ok {
		t.Fatalf("expected key removed, ok=%v err=%v", ok, err)
	}
}

func TestSQLiteBackend(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	exerciseBackend(t, testsupport.MustOpenStore(t, cfg))
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, store.NewMemory())
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	first, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Set(ctx, store.KeyDisplayTheme, "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := testsupport.MustOpenStore(t, cfg)
	got, err := second.Get(ctx, store.KeyDisplayTheme)
	if err != nil || got != "dark" {
		t.Fatalf("expected persisted value, got %q (%v)", got, err)
	}
	if _, err := second.UpdatedAt(ctx, store.KeyDisplayTheme); err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}
	if second.Path() != cfg.StatePath() {
		t.Fatalf("unexpected path %q", second.Path())
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	st, err := store.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	st.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	db.Close()

	if _, err := store.OpenPath(path); !errors.Is(err, store.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
