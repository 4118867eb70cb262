// Package logging assembles the slog loggers used by photosorter.
//
// It owns the console and JSON handlers, level and output plumbing, and
// context helpers that tag records with the run ID, stage and source file.
// Records go to stderr by default because stdout carries the action report.
// NewNop provides a discarding logger for tests and optional wiring.
package logging
