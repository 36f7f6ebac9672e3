package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDailyRun(t *testing.T) {
	loc := time.UTC

	// before the hour runs today
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, loc)
	next := NextDailyRun(now, 18)
	assert.Equal(t, time.Date(2026, 6, 15, 18, 0, 0, 0, loc), next)

	// at or past the hour runs tomorrow
	now = time.Date(2026, 6, 15, 18, 0, 0, 0, loc)
	next = NextDailyRun(now, 18)
	assert.Equal(t, time.Date(2026, 6, 16, 18, 0, 0, 0, loc), next)

	// month rollover
	now = time.Date(2026, 6, 30, 21, 0, 0, 0, loc)
	next = NextDailyRun(now, 18)
	assert.Equal(t, time.Date(2026, 7, 1, 18, 0, 0, 0, loc), next)
}

func TestNextWeeklyRun(t *testing.T) {
	loc := time.UTC

	// Monday June 15 2026; next Sunday is June 21
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, loc)
	next := NextWeeklyRun(now, time.Sunday, 10)
	assert.Equal(t, time.Date(2026, 6, 21, 10, 0, 0, 0, loc), next)
	assert.Equal(t, time.Sunday, next.Weekday())

	// Sunday morning before the hour runs the same day
	now = time.Date(2026, 6, 21, 8, 0, 0, 0, loc)
	next = NextWeeklyRun(now, time.Sunday, 10)
	assert.Equal(t, time.Date(2026, 6, 21, 10, 0, 0, 0, loc), next)

	// Sunday after the hour waits a full week
	now = time.Date(2026, 6, 21, 11, 0, 0, 0, loc)
	next = NextWeeklyRun(now, time.Sunday, 10)
	assert.Equal(t, time.Date(2026, 6, 28, 10, 0, 0, 0, loc), next)
}

func TestNextMonthStartRun(t *testing.T) {
	loc := time.UTC

	// mid-month waits for the next 1st
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, loc)
	next := NextMonthStartRun(now, 9)
	assert.Equal(t, time.Date(2026, 7, 1, 9, 0, 0, 0, loc), next)

	// the 1st before the hour runs the same day
	now = time.Date(2026, 7, 1, 8, 0, 0, 0, loc)
	next = NextMonthStartRun(now, 9)
	assert.Equal(t, time.Date(2026, 7, 1, 9, 0, 0, 0, loc), next)

	// December rolls into January
	now = time.Date(2026, 12, 10, 12, 0, 0, 0, loc)
	next = NextMonthStartRun(now, 9)
	assert.Equal(t, time.Date(2027, 1, 1, 9, 0, 0, 0, loc), next)
}
