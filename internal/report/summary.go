package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"photosorter/internal/pipeline"
)

// WriteSummary renders the totals of a run as a table, followed by the list
// of failed files when there are any.
func WriteSummary(w io.Writer, stats pipeline.Stats, dryRun bool) {
	title := "Sort summary"
	if dryRun {
		title += " (dry run)"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"Result", "Files"})
	tw.AppendRows([]table.Row{
		{"Copied", strconv.Itoa(stats.Copied)},
		{"Copied and renamed", strconv.Itoa(stats.Renamed)},
		{"Skipped (already present)", strconv.Itoa(stats.Skipped)},
		{"Ignored (not media)", strconv.Itoa(stats.Ignored)},
		{"Failed", strconv.Itoa(stats.Failed)},
	})
	tw.AppendSeparator()
	tw.AppendRow(table.Row{"Total", strconv.Itoa(stats.Seen)})
	tw.AppendFooter(table.Row{"Placed in library", strconv.Itoa(stats.Placed())})
	tw.AppendFooter(table.Row{"Bytes copied", humanize.Bytes(uint64(max(stats.BytesCopied, 0)))})
	tw.AppendFooter(table.Row{"Elapsed", stats.Elapsed.Round(time.Millisecond).String()})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})
	fmt.Fprintln(w, tw.Render())

	if len(stats.Errors) == 0 {
		return
	}
	fmt.Fprintln(w, "Failed files:")
	for _, fe := range stats.Errors {
		fmt.Fprintf(w, "  %s: %v\n", fe.Source, fe.Err)
	}
}
