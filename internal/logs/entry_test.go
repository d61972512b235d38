package logs_test

import (
	"testing"

	"mediashelf/internal/logs"
)

const sampleLine = `{"ts":"2026-01-02T03:04:05Z","level":"warn","msg":"remote load failed","component":"datastore","origin":"remote","records":3}`

func TestParseEntry(t *testing.T) {
	entry, ok := logs.ParseEntry(sampleLine)
	if !ok {
		t.Fatal("expected JSON line to parse")
	}
	if entry.Level != "warn" || entry.Component != "datastore" || entry.Message != "remote load failed" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	want := "2026-01-02T03:04:05Z WARN datastore: remote load failed origin=remote records=3"
	if got := entry.Format(); got != want {
		t.Fatalf("Format mismatch\n got: %q\nwant: %q", got, want)
	}

	if _, ok := logs.ParseEntry("plain text"); ok {
		t.Fatal("expected non-JSON line to be rejected")
	}
}

func TestFilterMatch(t *testing.T) {
	entry, _ := logs.ParseEntry(sampleLine)
	cases := []struct {
		filter logs.Filter
		want   bool
	}{
		{logs.Filter{}, true},
		{logs.Filter{Level: "info"}, true},
		{logs.Filter{Level: "warn"}, true},
		{logs.Filter{Level: "error"}, false},
		{logs.Filter{Component: "DataStore"}, true},
		{logs.Filter{Component: "server"}, false},
		{logs.Filter{Level: "verbose"}, true},
	}
	for _, tc := range cases {
		if got := tc.filter.Match(entry); got != tc.want {
			t.Fatalf("filter %+v: got %v want %v", tc.filter, got, tc.want)
		}
	}
}
