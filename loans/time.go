package loans

import (
	"time"

	"cloud.google.com/go/civil"
)

// =============================================================================
// CLOCK - Injectable "now"
// =============================================================================

// Clock returns the current instant. Its location decides which calendar
// day is "today".
type Clock func() time.Time

// SystemClock returns a Clock reading the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock always returns t. Used by tests and replays.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Today returns the calendar date of the clock's current instant.
func (c Clock) Today() civil.Date {
	return civil.DateOf(c())
}

// =============================================================================
// DATE ARITHMETIC
// =============================================================================

// AddMonthsClamped advances d by n calendar months, keeping the day of month
// when the target month has it and clamping to the month's last day
// otherwise: 2024-01-31 + 1 month = 2024-02-29.
func AddMonthsClamped(d civil.Date, n int) civil.Date {
	months := int(d.Month) - 1 + n
	year := d.Year + months/12
	month := months % 12
	if month < 0 {
		month += 12
		year--
	}
	target := civil.Date{Year: year, Month: time.Month(month + 1), Day: 1}
	day := d.Day
	if last := DaysIn(target.Year, target.Month); day > last {
		day = last
	}
	target.Day = day
	return target
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NewDate is shorthand for civil.Date{...}.
func NewDate(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}
