package allocator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocate_SingleDeveloperSingleDay(t *testing.T) {
	outcome, err := Allocate(AllocationConfig{
		Year:       2026,
		Month:      2,
		DayLimit:   1,
		Developers: []Developer{NewDeveloper("A")},
		Seed:       7,
	})
	require.NoError(t, err)

	require.Len(t, outcome.State.Slots, 2)
	assert.Equal(t, []string{"A", ""}, outcome.AssigneeSequence())

	require.Len(t, outcome.Gaps, 1)
	assert.Equal(t, "01/02 Night", outcome.Gaps[0].Label())

	require.Len(t, outcome.Rows, 1)
	assert.Equal(t, "A", outcome.Rows[0].DayShift)
	assert.Equal(t, "", outcome.Rows[0].NightShift)
	assert.False(t, outcome.Success)
	assert.Empty(t, outcome.ValidationErrors)
}

func TestAllocate_TwoDevelopersFourDays(t *testing.T) {
	for seed := uint64(0); seed < 25; seed++ {
		outcome, err := Allocate(AllocationConfig{
			Year:       2026,
			Month:      2,
			DayLimit:   4,
			Developers: []Developer{NewDeveloper("A"), NewDeveloper("B")},
			Seed:       seed,
		})
		require.NoError(t, err)

		assert.Equal(t, 0, outcome.Totals.Special)
		assert.Equal(t, 4, outcome.Totals.Night)
		assert.Equal(t, 4/2+1, outcome.State.Quotas.Night)

		for _, tally := range outcome.Tallies {
			assert.LessOrEqual(t, tally.Night, outcome.State.Quotas.Night, "seed %d dev %s", seed, tally.Developer)
		}

		// Anti-repeat forces strict alternation, so the last night would be a fourth night
		// for the same developer and has to be left empty.
		require.Len(t, outcome.Gaps, 1, "seed %d", seed)
		assert.Equal(t, 7, outcome.Gaps[0].Index)
	}
}

func TestAllocate_FullyRestrictedDeveloperNeverAppears(t *testing.T) {
	var everySlot []SlotKey
	for day := 1; day <= 28; day++ {
		everySlot = append(everySlot,
			SlotKey{Day: day, Month: time.February, Kind: ShiftDay},
			SlotKey{Day: day, Month: time.February, Kind: ShiftNight},
		)
	}

	outcome, err := Allocate(AllocationConfig{
		Year:  2026,
		Month: 2,
		Developers: []Developer{
			NewDeveloper("Shlomi"),
			NewDeveloper("Ohad", everySlot...),
			NewDeveloper("Yariv"),
			NewDeveloper("Omer"),
		},
		Seed: 42,
	})
	require.NoError(t, err)

	for _, row := range outcome.Rows {
		assert.NotEqual(t, "Ohad", row.DayShift)
		assert.NotEqual(t, "Ohad", row.NightShift)
	}

	tally, ok := outcome.Tally("Ohad")
	require.True(t, ok)
	assert.Equal(t, LoadCounters{}, tally.LoadCounters)
}

func TestAllocate_DeterministicForSeed(t *testing.T) {
	config := func(seed uint64) AllocationConfig {
		return AllocationConfig{
			Year:       2026,
			Month:      3,
			Developers: sampleRoster(t),
			Seed:       seed,
		}
	}

	first, err := Allocate(config(99))
	require.NoError(t, err)
	second, err := Allocate(config(99))
	require.NoError(t, err)

	assert.Equal(t, first.AssigneeSequence(), second.AssigneeSequence())
	assert.Equal(t, first.Tallies, second.Tallies)
}

func TestAllocate_Properties(t *testing.T) {
	holidays, err := NewHolidaySet("14/04 Day", "14/04 Night", "15/04 Day", "15/04 Night", "25/05 Day", "25/05 Night")
	require.NoError(t, err)

	for month := 1; month <= 12; month++ {
		for seed := uint64(0); seed < 5; seed++ {
			t.Run(fmt.Sprintf("2026-%02d/seed%d", month, seed), func(t *testing.T) {
				roster := sampleRoster(t)
				outcome, err := Allocate(AllocationConfig{
					Year:       2026,
					Month:      month,
					Developers: roster,
					Holidays:   holidays,
					Seed:       seed,
				})
				require.NoError(t, err)

				days, _ := DaysInMonth(2026, month)
				assert.Len(t, outcome.State.Slots, 2*days)
				assert.Len(t, outcome.Rows, days)
				assert.Empty(t, outcome.ValidationErrors)

				assertNoAdjacentRepeats(t, outcome)
				assertRestrictionsRespected(t, outcome, roster)
				assertQuotasRespected(t, outcome)
				assertGapsAreEmptyCells(t, outcome)
			})
		}
	}
}

func TestAllocate_EmptyRoster(t *testing.T) {
	_, err := Allocate(AllocationConfig{Year: 2026, Month: 2})
	assert.ErrorIs(t, err, ErrEmptyRoster)
}

func TestAllocate_InvalidDateReportedBeforeRoster(t *testing.T) {
	_, err := Allocate(AllocationConfig{Year: 2026, Month: 13})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestAllocate_DuplicateDeveloper(t *testing.T) {
	_, err := Allocate(AllocationConfig{
		Year:       2026,
		Month:      2,
		Developers: []Developer{NewDeveloper("Or"), NewDeveloper("Or")},
	})
	assert.ErrorIs(t, err, ErrDuplicateDeveloper)
}

func TestAllocate_DoesNotMutateInputRoster(t *testing.T) {
	roster := []Developer{NewDeveloper("A"), NewDeveloper("B"), NewDeveloper("C")}
	_, err := Allocate(AllocationConfig{Year: 2026, Month: 2, Developers: roster, Seed: 3})
	require.NoError(t, err)

	assert.Equal(t, "A", roster[0].Name)
	assert.Equal(t, "B", roster[1].Name)
	assert.Equal(t, "C", roster[2].Name)
}

func TestAllocate_TalliesMatchAssignments(t *testing.T) {
	outcome, err := Allocate(AllocationConfig{Year: 2026, Month: 9, Developers: sampleRoster(t), Seed: 11})
	require.NoError(t, err)

	counted := map[string]*LoadCounters{}
	for _, a := range outcome.State.Assignments {
		if a.IsGap() {
			continue
		}
		if counted[a.Developer] == nil {
			counted[a.Developer] = &LoadCounters{}
		}
		switch a.Slot.Category {
		case CategorySpecial:
			counted[a.Developer].Special++
		case CategoryNight:
			counted[a.Developer].Night++
		default:
			counted[a.Developer].Day++
		}
	}

	for _, tally := range outcome.Tallies {
		want := LoadCounters{}
		if c := counted[tally.Developer]; c != nil {
			want = *c
		}
		assert.Equal(t, want, tally.LoadCounters, tally.Developer)
	}
}

func sampleRoster(t *testing.T) []Developer {
	t.Helper()
	roster, err := ParseRoster(
		[]string{"Gabriel", "Shlomi", "Yariv", "Omer", "Amit", "Ohad", "Alex", "Or"},
		map[string][]string{
			"Gabriel": {"12/02 Day", "13/02 Night", "13/02 Day", "22/02 Day", "23/02 Night"},
			"Amit":    {"06/02 Day", "25/02 Day", "06/03 Night"},
			"Ohad":    {"01/02 Day", "01/02 Night", "02/02 Day", "02/02 Night", "03/02 Day", "17/03 Night"},
			"Alex":    {"01/02 Night", "10/02 Day", "27/02 Day", "27/02 Night", "28/02 Day", "28/02 Night"},
			"Or":      {"02/02 Day", "05/02 Day", "06/02 Day", "06/02 Night", "07/02 Day", "07/02 Night"},
		},
	)
	require.NoError(t, err)
	return roster
}

func assertNoAdjacentRepeats(t *testing.T, outcome *AllocationOutcome) {
	t.Helper()
	seq := outcome.AssigneeSequence()
	for i := 0; i+1 < len(seq); i++ {
		if seq[i] != "" && seq[i+1] != "" {
			assert.NotEqual(t, seq[i], seq[i+1], "slots %d and %d", i, i+1)
		}
	}
}

func assertRestrictionsRespected(t *testing.T, outcome *AllocationOutcome, roster []Developer) {
	t.Helper()
	byName := map[string]*Developer{}
	for i := range roster {
		byName[roster[i].Name] = &roster[i]
	}
	for _, a := range outcome.State.Assignments {
		if a.IsGap() {
			continue
		}
		assert.False(t, byName[a.Developer].IsRestricted(a.Slot.Key()), "%s on %s", a.Developer, a.Slot.Label())
	}
}

func assertQuotasRespected(t *testing.T, outcome *AllocationOutcome) {
	t.Helper()
	for _, tally := range outcome.Tallies {
		assert.LessOrEqual(t, tally.Special, outcome.State.Quotas.Special, tally.Developer)
		assert.LessOrEqual(t, tally.Night, outcome.State.Quotas.Night, tally.Developer)
	}
}

func assertGapsAreEmptyCells(t *testing.T, outcome *AllocationOutcome) {
	t.Helper()
	rowsByDay := map[int]ScheduleRow{}
	for _, row := range outcome.Rows {
		rowsByDay[row.DayOfMonth()] = row
	}
	for _, gap := range outcome.Gaps {
		row := rowsByDay[gap.Date.Day()]
		if gap.Kind == ShiftDay {
			assert.Empty(t, row.DayShift, gap.Label())
		} else {
			assert.Empty(t, row.NightShift, gap.Label())
		}
	}
}
