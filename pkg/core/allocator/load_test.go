package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadTracker_StartsAtZero(t *testing.T) {
	load := NewLoadTracker([]string{"Omer", "Shlomi"})

	assert.Equal(t, LoadCounters{}, load.Counters("Omer"))
	assert.Equal(t, 0, load.Counters("Shlomi").Total())
}

func TestLoadTracker_RecordIncrementsCategory(t *testing.T) {
	load := NewLoadTracker([]string{"Omer"})
	load.Record("Omer", CategorySpecial)
	load.Record("Omer", CategoryNight)
	load.Record("Omer", CategoryNight)
	load.Record("Omer", CategoryDay)

	c := load.Counters("Omer")
	assert.Equal(t, 1, c.Special)
	assert.Equal(t, 2, c.Night)
	assert.Equal(t, 1, c.Day)
	assert.Equal(t, 4, c.Total())
	assert.Equal(t, 2, c.Get(CategoryNight))
}

func TestLoadTracker_CountersAreCopies(t *testing.T) {
	load := NewLoadTracker([]string{"Omer"})
	c := load.Counters("Omer")
	c.Day = 10

	assert.Equal(t, 0, load.Counters("Omer").Day)
}

func TestLoadTracker_TalliesKeepRegistrationOrder(t *testing.T) {
	load := NewLoadTracker([]string{"Yariv", "Amit", "Yariv", "Gabriel"})
	load.Record("Gabriel", CategoryDay)

	tallies := load.Tallies()
	names := make([]string, len(tallies))
	for i, tally := range tallies {
		names[i] = tally.Developer
	}

	assert.Equal(t, []string{"Yariv", "Amit", "Gabriel"}, names)
	assert.Equal(t, 1, tallies[2].Day)
}
