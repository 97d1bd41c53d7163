// Package logging provides structured logging for the bluetrax tools.
//
// It wraps a zap logger behind package-level functions. Everything goes to
// stderr because stdout is frequently the binary log or the CSV output.
// Verbosity comes from the CLI flags (--verbose/--quiet) or from the
// BLUETRAX_LOG_LEVEL environment variable; the default level is warn.
//
// All functions are safe for concurrent use.
package logging
