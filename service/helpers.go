package service

import (
	"math"
	"time"
)

// round2 rounds to 2 decimal places, half away from zero, by rounding the
// value scaled to cents. All derived monetary and kWh figures go through it.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// monthName returns the English month name for a 1-based month number
func monthName(month int) string {
	return time.Month(month).String()
}
