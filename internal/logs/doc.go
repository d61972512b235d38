// Package logs reads the JSON log file written by internal/logging.
//
// Tail returns the last N lines (or everything after a byte offset) with
// bounded memory, and Follow polls for appended lines until its context is
// cancelled. ParseEntry decodes one JSON line so callers can filter by level
// or component and print entries in the console layout.
package logs
