// Package config loads, normalizes, and validates photosorter configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the PHOTOSORTER_SOURCE, PHOTOSORTER_TARGET and
// PHOTOSORTER_TIMEZONE environment fallbacks. Command-line flags are layered
// on top by the CLI before Finalize runs.
package config
