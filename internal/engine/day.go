package engine

import (
	"time"

	"github.com/tartampluch/go-tidyhome/internal/config"
)

// Day is a calendar day in YYYY-MM-DD form with no time-of-day or timezone
// component. The textual form sorts chronologically, so Day values compare
// directly with <, == and >. The zero value "" means unset.
//
// All arithmetic parses the day at UTC midnight. Working on date-only values
// keeps day differences exact in DST-observing locales, where local-time
// subtraction can be off by an hour around transitions.
type Day string

// FormatDay converts a timestamp to the calendar day it falls on, using the
// timestamp's own location. The time component is stripped.
func FormatDay(t time.Time) Day {
	return Day(t.Format(config.DateFormatDay))
}

// Today returns the current local calendar day according to the clock.
func Today(c Clock) Day {
	return FormatDay(c.Now())
}

// IsZero reports whether the day is unset.
func (d Day) IsZero() bool {
	return d == ""
}

// Time parses the day as UTC midnight.
func (d Day) Time() (time.Time, error) {
	return time.Parse(config.DateFormatDay, string(d))
}

// AddDays returns the calendar day n days after d (n may be negative),
// rolling over month and year boundaries. An unparseable day is returned
// unchanged; the engine treats malformed dates as inert rather than failing.
func AddDays(d Day, n int) Day {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return FormatDay(t.AddDate(0, 0, n))
}

// DiffDays returns the number of calendar days from b to a, positive when a
// is later. Either side failing to parse yields 0.
func DiffDays(a, b Day) int {
	at, err := a.Time()
	if err != nil {
		return 0
	}
	bt, err := b.Time()
	if err != nil {
		return 0
	}
	return int(at.Sub(bt).Hours() / config.HoursPerDay)
}
