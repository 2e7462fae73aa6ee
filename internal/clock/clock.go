// Package clock provides the calendar-day arithmetic used for streaks,
// cache freshness and the daily puzzle.
package clock

import "time"

// DateLayout is the ISO calendar-date format persisted in profiles and
// cache entries.
const DateLayout = "2006-01-02"

// Clock reports the current time. Production code uses System; tests
// inject a Fixed clock.
type Clock interface {
	Now() time.Time
}

// System is the wall clock in the local time zone.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time { return time.Now() }

// Fixed is a manually controlled clock for tests.
type Fixed struct {
	T time.Time
}

// Now returns the fixed time.
func (f *Fixed) Now() time.Time { return f.T }

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }

// AddDays moves the clock forward by n calendar days.
func (f *Fixed) AddDays(n int) { f.T = f.T.AddDate(0, 0, n) }

// ISODate formats t as YYYY-MM-DD in t's own location.
func ISODate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the calendar date of c.Now().
func Today(c Clock) string {
	return ISODate(c.Now())
}

// IsToday reports whether date names the same calendar day as now.
func IsToday(date string, now time.Time) bool {
	if date == "" {
		return false
	}
	return date == ISODate(now)
}

// IsYesterday reports whether date names the calendar day before now.
func IsYesterday(date string, now time.Time) bool {
	if date == "" {
		return false
	}
	return date == ISODate(now.AddDate(0, 0, -1))
}

// DayOfYear returns the 1-based ordinal of now within its year
// (January 1 is 1, February 1 is 32).
func DayOfYear(now time.Time) int {
	return now.YearDay()
}
