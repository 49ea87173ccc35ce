package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotOn(t *testing.T, date string, kind ShiftKind) Slot {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return Slot{Date: d, Kind: kind, Weekday: d.Weekday()}
}

func TestClassify_WeekendIsSpecial(t *testing.T) {
	// 2026-02-06 is a Friday, 2026-02-07 a Saturday
	assert.Equal(t, CategorySpecial, Classify(slotOn(t, "2026-02-06", ShiftDay), nil))
	assert.Equal(t, CategorySpecial, Classify(slotOn(t, "2026-02-06", ShiftNight), nil))
	assert.Equal(t, CategorySpecial, Classify(slotOn(t, "2026-02-07", ShiftDay), nil))
	assert.Equal(t, CategorySpecial, Classify(slotOn(t, "2026-02-07", ShiftNight), nil))
}

func TestClassify_Weekday(t *testing.T) {
	// 2026-02-08 is a Sunday
	assert.Equal(t, CategoryDay, Classify(slotOn(t, "2026-02-08", ShiftDay), nil))
	assert.Equal(t, CategoryNight, Classify(slotOn(t, "2026-02-08", ShiftNight), nil))
}

func TestClassify_HolidayMatchesKind(t *testing.T) {
	holidays, err := NewHolidaySet("14/04 Night")
	require.NoError(t, err)

	// 2026-04-14 is a Tuesday
	assert.Equal(t, CategoryDay, Classify(slotOn(t, "2026-04-14", ShiftDay), holidays))
	assert.Equal(t, CategorySpecial, Classify(slotOn(t, "2026-04-14", ShiftNight), holidays))
}

func TestClassify_Deterministic(t *testing.T) {
	holidays, err := NewHolidaySet("04/05 Day", "04/05 Night")
	require.NoError(t, err)

	slots := collect(t, 2026, 5, 0)
	for _, slot := range slots {
		assert.Equal(t, Classify(slot, holidays), Classify(slot, holidays))
	}
}

func TestClassifier_CustomWeekend(t *testing.T) {
	c := NewClassifier(nil, time.Saturday, time.Sunday)

	assert.Equal(t, CategoryNight, c.Classify(slotOn(t, "2026-02-06", ShiftNight)))
	assert.Equal(t, CategorySpecial, c.Classify(slotOn(t, "2026-02-08", ShiftNight)))
}

func TestNewHolidaySet_Malformed(t *testing.T) {
	_, err := NewHolidaySet("14-04 Day")
	assert.ErrorIs(t, err, ErrMalformedRestriction)
}

func TestInitAllocation_ClassificationSharedByQuotaAndFilter(t *testing.T) {
	holidays, err := NewHolidaySet("14/04 Day", "14/04 Night", "15/04 Day", "15/04 Night")
	require.NoError(t, err)

	state, _, err := InitAllocation(AllocationConfig{
		Year:       2026,
		Month:      4,
		Developers: []Developer{NewDeveloper("A"), NewDeveloper("B"), NewDeveloper("C")},
		Holidays:   holidays,
	})
	require.NoError(t, err)

	for _, slot := range state.Slots {
		assert.Equal(t, Classify(slot, holidays), slot.Category, slot.Label())
	}

	totals := CountCategories(state.Slots)
	assert.Equal(t, totals.Night/3+1, state.Quotas.Night)
	assert.Equal(t, totals.Special/3+1, state.Quotas.Special)
	assert.Equal(t, len(state.Slots), totals.Special+totals.Night+totals.Day)
}
