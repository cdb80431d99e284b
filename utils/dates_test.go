package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2026, 8, 15, 17, 42, 9, 123, time.UTC)
	got := BeginningOfDay(ts)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestEndOfDayIsBeforeNextMidnight(t *testing.T) {
	ts := time.Date(2026, 8, 15, 3, 0, 0, 0, time.UTC)
	got := EndOfDay(ts)
	assert.True(t, got.Before(time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.After(time.Date(2026, 8, 15, 23, 59, 59, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2026, 8, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 15, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 14, DaysBetween(start, end))
}
