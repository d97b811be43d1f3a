// Package types implements special types for the budget backend.
package types

import (
	"fmt"
	"time"
)

// Day is a calendar day, used as the bucket key for chart series.
//
// All bucketing happens in UTC so that the same record set always
// produces the same buckets, independent of the host timezone.
type Day time.Time

// NewDay returns a new Day.
func NewDay(year int, month time.Month, day int) Day {
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DayOf returns the Day on which a time occurs, evaluated in UTC.
func DayOf(t time.Time) Day {
	year, month, day := t.In(time.UTC).Date()
	return Day(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// String returns the chart label for the day, formatted as
// day-of-month "/" month number without zero padding, e.g. "7/10".
//
// Labels are sorted as strings, so "10/3" orders before "2/3". The
// charting consumer relies on this exact key format.
func (d Day) String() string {
	t := time.Time(d)
	return fmt.Sprintf("%d/%d", t.Day(), int(t.Month()))
}

// Time returns the Day as a time.Time, at midnight UTC.
func (d Day) Time() time.Time {
	return time.Time(d)
}

// IsZero reports whether the Day is the zero value.
func (d Day) IsZero() bool {
	return time.Time(d).IsZero()
}

// Before reports whether the day is before the other day.
func (d Day) Before(other Day) bool {
	return time.Time(d).Before(time.Time(other))
}
