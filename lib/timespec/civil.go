package timespec

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day or location attached.
// It is a comparable value type, usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate constructs a Date from integer components without validation.
// Use Valid to check whether the date exists on the calendar.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: time.Month(month), Day: day}
}

// DateOf extracts the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Valid reports whether the date exists on the proleptic Gregorian calendar.
// time.Date normalizes out-of-range components (Feb 31 becomes Mar 2/3), so
// a round-trip that changes any component means the date was invalid.
func (d Date) Valid() bool {
	norm := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return norm.Year() == d.Year && norm.Month() == d.Month && norm.Day() == d.Day
}

// Weekday returns the day of the week for this date.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// AddDays returns the date n days after d (or before, for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// Before reports whether d is chronologically before o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After reports whether d is chronologically after o.
func (d Date) After(o Date) bool {
	return o.Before(d)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// TimeOfDay is a wall-clock time with whole-second resolution and no
// location attached. Like Date, it is comparable.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TimeOfDayOf extracts the wall-clock time of t in t's location,
// truncated to whole seconds.
func TimeOfDayOf(t time.Time) TimeOfDay {
	hour, minute, second := t.Clock()
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}
}

// Before reports whether td is earlier in the day than o.
func (td TimeOfDay) Before(o TimeOfDay) bool {
	if td.Hour != o.Hour {
		return td.Hour < o.Hour
	}
	if td.Minute != o.Minute {
		return td.Minute < o.Minute
	}
	return td.Second < o.Second
}

// After reports whether td is later in the day than o.
func (td TimeOfDay) After(o TimeOfDay) bool {
	return o.Before(td)
}

// String formats the time as HH:MM:SS.
func (td TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", td.Hour, td.Minute, td.Second)
}
