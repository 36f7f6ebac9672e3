package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalClock_InvalidTimezone(t *testing.T) {
	c, err := NewLocalClock("Not/AZone")
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestLocalClock_TodayIsDayGranular(t *testing.T) {
	c, err := NewLocalClock("America/Lima")
	require.NoError(t, err)

	today := c.Today()
	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, 0, today.Second())
	assert.Equal(t, "America/Lima", today.Location().String())
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2, 2024, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), last)

	first, last = MonthRange(12, 2025, time.UTC)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), last)
}

func TestIsLastDayOfMonth(t *testing.T) {
	assert.True(t, IsLastDayOfMonth(time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)))
	assert.True(t, IsLastDayOfMonth(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsLastDayOfMonth(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsLastDayOfMonth(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2025, 6, 15, 19, 30, 0, 0, time.UTC)
	c := &FixedClock{Time: at}

	assert.Equal(t, at, c.Now())
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), c.Today())

	month, year := c.CurrentPeriod()
	assert.Equal(t, 6, month)
	assert.Equal(t, 2025, year)
}
