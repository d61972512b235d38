// Package catalog defines the media record model and the pipe-delimited text
// codec used to persist it.
//
// Each catalog line holds one record as `key=value` tokens separated by `|`.
// The reserved characters `\` and `|` are escaped inside values, blank lines
// and `#` comments are ignored, and lines without a type are discarded. Keys
// outside the canonical field set are preserved in Record.Extras so newer
// files survive a round trip through older binaries.
//
// Parsing is deliberately lenient: malformed tokens are dropped, duplicate
// keys resolve to the last occurrence, and nothing here ever returns an error.
// Semantic checks live in the validation package; ordering and filtering live
// in the query package.
package catalog
