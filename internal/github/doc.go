// Package github reads and writes the catalog file through the GitHub REST
// contents API and publishes local edits as commits.
//
// Client wraps the two endpoints the publisher needs. Publisher resolves the
// repository settings (flags over saved state over configuration), validates
// them, and records the settings and resulting blob SHA in local state after a
// successful commit.
package github
