package allocator

// LoadCounters are a developer's running counts per category
type LoadCounters struct {
	Special int
	Night   int
	Day     int
}

// Get returns the counter for a category
func (c LoadCounters) Get(category Category) int {
	switch category {
	case CategorySpecial:
		return c.Special
	case CategoryNight:
		return c.Night
	default:
		return c.Day
	}
}

// Total returns the number of shifts across all categories
func (c LoadCounters) Total() int {
	return c.Special + c.Night + c.Day
}

// LoadTracker holds the counters for one run. Counters only ever increase.
type LoadTracker struct {
	order    []string
	counters map[string]*LoadCounters
}

// NewLoadTracker creates zeroed counters for each name
func NewLoadTracker(names []string) *LoadTracker {
	t := &LoadTracker{
		order:    make([]string, 0, len(names)),
		counters: make(map[string]*LoadCounters, len(names)),
	}
	for _, name := range names {
		if _, exists := t.counters[name]; exists {
			continue
		}
		t.order = append(t.order, name)
		t.counters[name] = &LoadCounters{}
	}
	return t
}

// Counters returns a copy of the developer's counters
func (t *LoadTracker) Counters(name string) LoadCounters {
	if c, ok := t.counters[name]; ok {
		return *c
	}
	return LoadCounters{}
}

// Record increments the developer's counter for the category
func (t *LoadTracker) Record(name string, category Category) {
	c, ok := t.counters[name]
	if !ok {
		c = &LoadCounters{}
		t.counters[name] = c
		t.order = append(t.order, name)
	}
	switch category {
	case CategorySpecial:
		c.Special++
	case CategoryNight:
		c.Night++
	default:
		c.Day++
	}
}

// Tallies returns the counters in the order developers were registered
func (t *LoadTracker) Tallies() []Tally {
	tallies := make([]Tally, 0, len(t.order))
	for _, name := range t.order {
		tallies = append(tallies, Tally{Developer: name, LoadCounters: *t.counters[name]})
	}
	return tallies
}
