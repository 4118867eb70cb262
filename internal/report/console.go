package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"photosorter/internal/placement"
)

// Console writes one line per file to out. It satisfies pipeline.Reporter.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	color    bool
	progress *Progress
}

// NewConsole builds a console reporter. progress may be nil.
func NewConsole(out io.Writer, color bool, progress *Progress) *Console {
	return &Console{out: out, color: color, progress: progress}
}

// Action prints the line for a placed, skipped or ignored file.
func (c *Console) Action(a placement.Action) {
	line := a.String()
	if c.color {
		line = colorVerb(line, kindColor(a.Kind))
	}
	c.writeLine(line)
}

// Failure prints the line for a file that could not be sorted.
func (c *Console) Failure(source string, err error) {
	line := fmt.Sprintf("FAIL %s: %v", source, err)
	if c.color {
		line = ansiRed + line + ansiReset
	}
	c.writeLine(line)
}

func (c *Console) writeLine(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.progress.Clear()
	fmt.Fprintln(c.out, line)
	c.progress.Step()
}

// colorVerb colours the leading verb ("COPY", "COPY and RENAME", ...) and
// leaves the paths plain so they stay easy to copy.
func colorVerb(line, color string) string {
	if color == "" {
		return line
	}
	prefix := ""
	rest := line
	if strings.HasPrefix(rest, dryRunPrefix) {
		prefix = dryRunPrefix
		rest = strings.TrimPrefix(rest, dryRunPrefix)
	}
	verbEnd := len(rest)
	for _, verb := range []string{"COPY and RENAME ", "COPY ", "SKIP ", "IGNORE "} {
		if strings.HasPrefix(rest, verb) {
			verbEnd = len(verb) - 1
			break
		}
	}
	return prefix + color + rest[:verbEnd] + ansiReset + rest[verbEnd:]
}

const dryRunPrefix = "[dry-run] "
