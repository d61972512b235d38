// Package store persists mediashelf's local state as string key/value pairs.
//
// The SQLite-backed Store keeps the saved catalog text, the remote blob SHA,
// GitHub settings, the admin password hash and session, and display
// preferences under the well-known keys declared in keys.go. Memory offers the
// same Backend contract without touching disk and is used by tests and
// one-shot commands.
//
// Writes retry with exponential backoff when SQLite reports the database as
// busy, so the CLI and a running `mediashelf serve` can share one state file.
package store
