package report

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"photosorter/internal/config"
	"photosorter/internal/placement"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
	ansiDim    = "\x1b[2m"
)

// ShouldColorize resolves a report.color mode against the writer. In auto
// mode only terminals get colour.
func ShouldColorize(writer io.Writer, mode string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func kindColor(kind placement.Kind) string {
	switch kind {
	case placement.KindCopy:
		return ansiGreen
	case placement.KindCopyRename:
		return ansiYellow
	case placement.KindSkip:
		return ansiBlue
	case placement.KindIgnore:
		return ansiDim
	default:
		return ""
	}
}
