package api

import (
	"time"

	"mediashelf/internal/catalog"
	"mediashelf/internal/validation"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// FormatTime renders t in the API timestamp format.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

// ItemsResponse lists the records that passed the active filter.
type ItemsResponse struct {
	Items  []catalog.Record `json:"items"`
	Total  int              `json:"total"`
	Origin string           `json:"origin"`
	Sort   string           `json:"sort"`
}

// MetaResponse lists the filter choices offered for the catalog.
type MetaResponse struct {
	Genres   []string `json:"genres"`
	Tags     []string `json:"tags"`
	Statuses []string `json:"statuses"`
	Years    []string `json:"years"`
	Origin   string   `json:"origin"`
}

// ValidateResponse reports catalog diagnostics.
type ValidateResponse struct {
	Valid       bool                    `json:"valid"`
	Records     int                     `json:"records"`
	Diagnostics []validation.Diagnostic `json:"diagnostics"`
	Messages    []string                `json:"messages"`
	Origin      string                  `json:"origin,omitempty"`
}

// LoginRequest carries the admin password.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries an issued session.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// SaveResponse reports a local save. Diagnostics are informational; saving
// never fails on invalid records.
type SaveResponse struct {
	Records     int                     `json:"records"`
	Diagnostics []validation.Diagnostic `json:"diagnostics"`
}

// CommitRequest overrides stored GitHub settings for one commit. Text, when
// set, is committed verbatim instead of the formatted current catalog.
type CommitRequest struct {
	Owner  string `json:"owner,omitempty"`
	Repo   string `json:"repo,omitempty"`
	Branch string `json:"branch,omitempty"`
	Path   string `json:"path,omitempty"`
	Token  string `json:"token,omitempty"`
	Text   string `json:"text,omitempty"`
}

// CommitResponse describes a created commit.
type CommitResponse struct {
	SHA       string `json:"sha"`
	ShortSHA  string `json:"shortSha"`
	CommitURL string `json:"commitUrl"`
	Message   string `json:"message"`
}

// TestResponse reports a successful repository connection check.
type TestResponse struct {
	SHA      string `json:"sha"`
	ShortSHA string `json:"shortSha"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
