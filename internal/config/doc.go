// Package config loads, normalizes, and validates mediashelf configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a .env file when one sits in the working
// directory, and honours environment fallbacks such as GITHUB_TOKEN and
// MEDIASHELF_AUTH_SECRET. The Config type centralizes every knob the CLI and the
// local API server need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
