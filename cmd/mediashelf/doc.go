// Package main hosts the mediashelf CLI entrypoint and command graph.
//
// The Cobra command tree browses the catalog (list, show, meta), checks and
// rewrites catalog files (validate, fmt, import, export, save), publishes to
// GitHub, manages the admin session, and runs the local HTTP API. It
// centralizes configuration resolution, state store access and logging setup
// so subcommands only describe their own flags and output.
//
// Commands that change the catalog or its publishing settings require an
// admin session created with `mediashelf auth login`.
package main
