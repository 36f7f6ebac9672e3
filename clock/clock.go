// Package clock supplies the application's notion of "now" pinned to a
// single timezone, so that day and month boundaries are stable regardless
// of where the process runs.
package clock

import (
	"time"

	"energytrack.app/errors"
)

// Clock provides the current date and period in the configured timezone
type Clock interface {
	Now() time.Time
	Today() time.Time
	CurrentPeriod() (month int, year int)
}

// LocalClock is the production clock backed by the system time
type LocalClock struct {
	location *time.Location
}

// NewLocalClock creates a clock pinned to the named timezone
func NewLocalClock(timezone string) (*LocalClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.NewConfigurationError("invalid timezone: "+timezone, err)
	}
	return &LocalClock{location: loc}, nil
}

// Now returns the current wall-clock time in the configured timezone
func (c *LocalClock) Now() time.Time {
	return time.Now().In(c.location)
}

// Today returns the current date truncated to day granularity
func (c *LocalClock) Today() time.Time {
	return DayOf(c.Now())
}

// CurrentPeriod returns the current calendar month and year
func (c *LocalClock) CurrentPeriod() (int, int) {
	now := c.Now()
	return int(now.Month()), now.Year()
}

// DayOf truncates a time to midnight of its calendar day, keeping its location
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthRange returns the first and last day of a (month, year) period,
// both at day granularity. Records dated the last day still belong to
// the period; the first day of the next month does not.
func MonthRange(month, year int, loc *time.Location) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// IsLastDayOfMonth reports whether t falls on the final day of its month
func IsLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

// FixedClock is a test clock frozen at a single instant
type FixedClock struct {
	Time time.Time
}

func (c *FixedClock) Now() time.Time   { return c.Time }
func (c *FixedClock) Today() time.Time { return DayOf(c.Time) }
func (c *FixedClock) CurrentPeriod() (int, int) {
	return int(c.Time.Month()), c.Time.Year()
}
