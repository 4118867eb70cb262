package report

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress is a spinner counting processed files. The total is unknown
// because the tree is walked lazily. A nil *Progress is valid and does
// nothing.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress returns a spinner writing to w, or nil when disabled.
func NewProgress(w io.Writer, enabled bool) *Progress {
	if !enabled || w == nil {
		return nil
	}
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("sorting"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)
	return &Progress{bar: bar}
}

// Step counts one file.
func (p *Progress) Step() {
	if p == nil {
		return
	}
	_ = p.bar.Add(1)
}

// Clear erases the spinner line so a report line can be printed.
func (p *Progress) Clear() {
	if p == nil {
		return
	}
	_ = p.bar.Clear()
}

// Finish stops the spinner and clears it.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	_ = p.bar.Finish()
}
