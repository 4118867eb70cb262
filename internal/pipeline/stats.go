package pipeline

import "time"

// FileError records a file that could not be sorted in continue mode.
type FileError struct {
	Source string
	Err    error
}

// Stats tracks counters and byte totals across a run.
type Stats struct {
	RunID       string
	Seen        int
	Copied      int
	Renamed     int
	Skipped     int
	Ignored     int
	Failed      int
	BytesCopied int64
	Errors      []FileError
	Elapsed     time.Duration
}

// Placed counts files that were written to the target (or would have been in
// a dry run).
func (s *Stats) Placed() int {
	return s.Copied + s.Renamed
}
