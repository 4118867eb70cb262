// Package calendar maps file modification times onto the calendar days used
// to bucket the target tree.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"photosorter/internal/failure"
)

const (
	minYear = 1
	maxYear = 9999
)

// Date is a calendar day in the zone the timestamp was resolved in.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Resolve converts mtime into the calendar date observed in loc. A nil loc
// means time.Local. Zero timestamps and years outside 1..9999 cannot be
// represented and fail with failure.ErrTimeConversion.
func Resolve(mtime time.Time, loc *time.Location) (Date, error) {
	if mtime.IsZero() {
		return Date{}, failure.Wrap(failure.ErrTimeConversion, "date", "resolve", "modification time is unset", nil)
	}
	if loc == nil {
		loc = time.Local
	}
	local := mtime.In(loc)
	year, month, day := local.Date()
	if year < minYear || year > maxYear {
		return Date{}, failure.Wrap(
			failure.ErrTimeConversion,
			"date",
			"resolve",
			fmt.Sprintf("year %d out of range", year),
			nil,
		)
	}
	return Date{Year: year, Month: int(month), Day: day}, nil
}

// LoadLocation resolves a zone name. Blank and "local" select time.Local,
// "utc" selects time.UTC; anything else is looked up in the tz database.
func LoadLocation(name string) (*time.Location, error) {
	trimmed := strings.TrimSpace(name)
	switch strings.ToLower(trimmed) {
	case "", "local":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		return nil, failure.Wrap(failure.ErrConfiguration, "date", "load timezone", fmt.Sprintf("unknown timezone %q", trimmed), err)
	}
	return loc, nil
}
