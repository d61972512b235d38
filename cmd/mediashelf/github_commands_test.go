package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"mediashelf/internal/testsupport"
)

type fakeContents struct {
	mu       sync.Mutex
	branches []string
	commits  []string
}

func (f *fakeContents) server(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			f.branches = append(f.branches, r.URL.Query().Get("ref"))
			json.NewEncoder(w).Encode(map[string]string{
				"content": base64.StdEncoding.EncodeToString([]byte("type=movie|title=Old")),
				"sha":     "0123456789abcdef",
			})
		case http.MethodPut:
			if r.Header.Get("Authorization") != "Bearer ghp_test" {
				t.Errorf("unexpected authorization %q", r.Header.Get("Authorization"))
			}
			var body struct {
				Content string `json:"content"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Errorf("decode put: %v", err)
			}
			data, _ := base64.StdEncoding.DecodeString(body.Content)
			f.commits = append(f.commits, string(data))
			json.NewEncoder(w).Encode(map[string]any{
				"content": map[string]string{"sha": "fedcba9876543210"},
				"commit":  map[string]string{"html_url": "https://github.example/octo/shelf/commit/1"},
			})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGitHubTestAndCommit(t *testing.T) {
	fake := &fakeContents{}
	srv := fake.server(t)
	env := setupCLITestEnv(t, testsupport.WithGitHub(srv.URL, "octo", "shelf", "ghp_test"))

	requireContains(t, env.run(t, "github", "test"), "Connection successful! File SHA: 0123456")

	if _, _, err := runCLI(t, []string{"github", "commit"}, env.configPath); err == nil {
		t.Fatal("expected commit to require a session")
	}

	env.login(t)
	out := env.run(t, "github", "commit")
	requireContains(t, out, "Committed successfully! File SHA: fedcba9")
	requireContains(t, out, "https://github.example/octo/shelf/commit/1")

	if len(fake.commits) != 1 {
		t.Fatalf("expected one commit, got %d", len(fake.commits))
	}
	lines := strings.Split(fake.commits[0], "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "type=movie|title=Inception") {
		t.Fatalf("unexpected committed text %q", fake.commits[0])
	}
}

func TestGitHubSettings(t *testing.T) {
	fake := &fakeContents{}
	srv := fake.server(t)
	env := setupCLITestEnv(t, testsupport.WithGitHub(srv.URL, "octo", "shelf", "ghp_test"))

	out := env.run(t, "github", "settings")
	requireContains(t, out, "octo")
	requireContains(t, out, "********")
	if strings.Contains(out, "ghp_test") {
		t.Fatalf("token leaked in output %q", out)
	}

	if _, _, err := runCLI(t, []string{"github", "settings", "--branch", "dev"}, env.configPath); err == nil {
		t.Fatal("expected saving settings to require a session")
	}

	env.login(t)
	env.run(t, "github", "settings", "--branch", "dev")
	requireContains(t, env.run(t, "github", "settings"), "dev")

	env.run(t, "github", "test")
	if got := fake.branches[len(fake.branches)-1]; got != "dev" {
		t.Fatalf("expected saved branch to be used, got %q", got)
	}

	if _, _, err := runCLI(t, []string{"github", "settings", "--owner", "a/b"}, env.configPath); err == nil {
		t.Fatal("expected owner containing a slash to be rejected")
	}

	requireContains(t, env.run(t, "github", "settings", "--clear"), "Cleared GitHub settings")
	requireContains(t, env.run(t, "github", "settings"), "main")
}
