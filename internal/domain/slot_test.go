package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds_HalfOpenInterval(t *testing.T) {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	start, end := DayBounds(day)

	assert.Equal(t, day, start)
	assert.Equal(t, day.AddDate(0, 0, 1), end)

	// Граница end не входит в сутки: слот следующей полуночи остаётся за интервалом
	lastInside := time.Date(2026, 9, 15, 23, 59, 59, 999999999, time.UTC)
	assert.True(t, lastInside.Before(end))
}

func TestDayBounds_TruncatesTimeOfDay(t *testing.T) {
	moment := time.Date(2026, 9, 15, 14, 37, 12, 0, time.UTC)

	start, end := DayBounds(moment)

	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC), end)
}

func TestDayBounds_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	moment := time.Date(2026, 9, 15, 9, 0, 0, 0, loc)

	start, end := DayBounds(moment)

	assert.Equal(t, loc, start.Location())
	assert.Equal(t, loc, end.Location())
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestSlot_HasStarted(t *testing.T) {
	start := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	slot := &Slot{StartTime: start}

	assert.False(t, slot.HasStarted(start.Add(-time.Minute)))
	assert.False(t, slot.HasStarted(start))
	assert.True(t, slot.HasStarted(start.Add(time.Minute)))
}
