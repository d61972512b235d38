// Package server exposes the catalog over a local HTTP API.
//
// Read routes (items, meta, validate, raw data) are public. Writes (saving
// the local catalog, committing to GitHub, logging out) require a bearer
// session token issued by POST /api/login. When a session is past half its
// lifetime, authenticated responses carry a replacement token in the
// X-Session-Token header.
//
// Every response carries an X-Request-ID header, echoed from the request
// when the client supplies one, and the same identifier is attached to the
// request's log lines.
package server
