// Package datastore loads, saves, imports, and exports the catalog.
//
// Load consults sources in priority order: the published remote URL, the text
// saved in local state, the configured data file, and finally an embedded
// sample. The first source that produces text wins and failures fall through
// with a warning. Concurrent Load calls share a single in-flight fetch.
package datastore
