package library

import (
	"path/filepath"
	"strconv"

	"photosorter/internal/calendar"
)

// TargetPath builds the destination for filename dated d under root.
func TargetPath(root string, d calendar.Date, filename string) string {
	return filepath.Join(
		root,
		strconv.Itoa(d.Year),
		strconv.Itoa(d.Month),
		strconv.Itoa(d.Day),
		filename,
	)
}
