package allocator

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, year, month, dayLimit int) []Slot {
	t.Helper()
	seq, err := ExpandDays(year, month, dayLimit)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestExpandMonth_SlotCountForEveryMonth(t *testing.T) {
	for _, year := range []int{2024, 2025, 2026} {
		for month := 1; month <= 12; month++ {
			days, err := DaysInMonth(year, month)
			require.NoError(t, err)

			seq, err := ExpandMonth(year, month)
			require.NoError(t, err)
			slots := slices.Collect(seq)

			assert.Len(t, slots, 2*days, "%d-%02d", year, month)
		}
	}
}

func TestExpandMonth_DayBeforeNightAndDatesIncrease(t *testing.T) {
	slots := collect(t, 2026, 3, 0)

	for i := 0; i < len(slots); i += 2 {
		assert.Equal(t, ShiftDay, slots[i].Kind)
		assert.Equal(t, ShiftNight, slots[i+1].Kind)
		assert.True(t, slots[i].Date.Equal(slots[i+1].Date))
		if i > 0 {
			assert.True(t, slots[i].Date.After(slots[i-1].Date), "dates must strictly increase between days")
		}
	}

	for i, slot := range slots {
		assert.Equal(t, i, slot.Index)
		assert.Equal(t, slot.Date.Weekday(), slot.Weekday)
	}
}

func TestExpandMonth_LeapYearFebruary(t *testing.T) {
	assert.Len(t, collect(t, 2024, 2, 0), 58)
	assert.Len(t, collect(t, 2026, 2, 0), 56)
}

func TestExpandMonth_InvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		_, err := ExpandMonth(2026, month)
		assert.True(t, errors.Is(err, ErrInvalidDate), "month %d", month)
	}
}

func TestExpandMonth_InvalidYear(t *testing.T) {
	_, err := ExpandMonth(0, 5)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExpandDays_Truncates(t *testing.T) {
	slots := collect(t, 2026, 2, 1)
	require.Len(t, slots, 2)
	assert.Equal(t, "01/02 Day", slots[0].Label())
	assert.Equal(t, "01/02 Night", slots[1].Label())
	assert.Equal(t, time.Sunday, slots[0].Weekday)
}

func TestExpandDays_LimitBeyondMonth(t *testing.T) {
	_, err := ExpandDays(2026, 2, 29)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExpandMonth_ReDerivable(t *testing.T) {
	seq, err := ExpandMonth(2026, 4)
	require.NoError(t, err)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}
