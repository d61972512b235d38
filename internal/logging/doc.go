// Package logging assembles structured slog loggers and formatting helpers used
// across mediashelf.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and tees records into a JSON log file under the configured log directory.
// Context helpers tag server log lines with request identifiers. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
