package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRollingDates(t *testing.T) {
	from := time.Date(2026, time.August, 30, 15, 4, 5, 0, time.UTC)

	dates := RollingDates(from, 7)

	assert.Len(t, dates, 7)
	assert.Equal(t, "2026-08-30", dates[0])
	assert.Equal(t, "2026-09-05", dates[6])
	for _, d := range dates {
		_, err := time.Parse(DateLayout, d)
		assert.NoError(t, err, d)
	}
}

func TestRollingDatesZero(t *testing.T) {
	assert.Empty(t, RollingDates(time.Now(), 0))
}

func TestDefaultSlotTimes(t *testing.T) {
	assert.Len(t, DefaultSlotTimes, 9)
	assert.Equal(t, "09:00", DefaultSlotTimes[0])
	assert.Equal(t, "17:00", DefaultSlotTimes[len(DefaultSlotTimes)-1])
	for _, slot := range DefaultSlotTimes {
		_, err := time.Parse("15:04", slot)
		assert.NoError(t, err, slot)
	}
}
