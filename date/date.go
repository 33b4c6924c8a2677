// Package date provides a day-granularity Date type and helpers to move between
// dates and instants in a given location.
package date

import (
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Day is the nominal length of a day.
const Day = 24 * time.Hour

// DayMillis is the nominal length of a day in milliseconds.
const DayMillis = int64(Day / time.Millisecond)

// Date represent a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// ISOWeek returns the ISO 8601 year and week number in which d occurs.
func (d Date) ISOWeek() (year, week int) { return d.time().ISOWeek() }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Of returns the calendar day of t, in t's own location.
func Of(t time.Time) Date { return New(t.Date()) }

// FromMillis returns the calendar day, in loc, of the instant ms milliseconds after the epoch.
func FromMillis(ms int64, loc *time.Location) Date {
	return Of(time.UnixMilli(ms).In(loc))
}

// In returns the instant the day starts in loc.
func (d Date) In(loc *time.Location) time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, loc) }

// Millis returns the epoch milliseconds of the start of the day in loc.
func (d Date) Millis(loc *time.Location) int64 { return d.In(loc).UnixMilli() }

// StartOfDay truncates an epoch milliseconds instant to the start of its calendar day in loc.
func StartOfDay(ms int64, loc *time.Location) int64 { return FromMillis(ms, loc).Millis(loc) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.Compare(x) > 0 }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after x.
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return cmpInt(d.y, x.y)
	case d.m != x.m:
		return cmpInt(int(d.m), int(x.m))
	default:
		return cmpInt(d.d, x.d)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Today returns the current date in loc.
func Today(loc *time.Location) Date { return Of(time.Now().In(loc)) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return New(d.y, d.m, d.d+i) }

// Year returns current year.
func (d Date) Year() int { return d.y }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Format formats the date using a time layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// Parse parses a Date from a string. It is lenient and accepts formats like "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	// We use a slightly more permisive format for read, to support 2025-7-1 instead of 2025-07-01
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// StartOf returns the first day of the period containing d.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Weekly:
		// ISO weeks start on monday.
		offset := (int(d.Weekday()) + 6) % 7
		return d.Add(-offset)
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		return New(d.y, d.m-(d.m-1)%3, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		return d
	}
}

// EndOf returns the last day of the period containing d.
func (d Date) EndOf(p Period) Date {
	switch p {
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Monthly:
		return New(d.y, d.m+1, 0)
	case Quarterly:
		start := d.StartOf(Quarterly)
		return New(start.y, start.m+3, 0)
	case Yearly:
		return New(d.y, time.December, 31)
	default:
		return d
	}
}
