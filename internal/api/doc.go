// Package api defines the wire-format types shared by the HTTP server and the
// CLI's --json output, plus CatalogService, which loads the catalog and
// derives the filtered items, facets and diagnostics both surfaces report.
//
// # Key Types
//
// ItemsResponse: filtered and sorted records with the total before filtering.
//
// MetaResponse: distinct genres, tags, statuses and years.
//
// ValidateResponse: per-line diagnostics and their rendered messages.
//
// LoginResponse, SaveResponse, CommitResponse: results of the admin actions.
//
// # Caching
//
// Parsing, facet extraction and validation depend only on the catalog text,
// so CatalogService keeps them in an LRU keyed by the SHA-256 of that text.
// A reload that returns identical text reuses the cached snapshot.
//
// DTOs use camelCase JSON tags. Timestamps use RFC3339 with milliseconds.
package api
