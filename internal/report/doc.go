// Package report renders a run for humans: one stdout line per file, an
// optional totals table and an optional progress spinner on stderr.
package report
