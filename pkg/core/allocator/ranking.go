package allocator

import "math/rand/v2"

// loadRank orders candidates by shifts of the slot's category, then by total shifts
type loadRank struct {
	category int
	total    int
}

func (r loadRank) less(o loadRank) bool {
	if r.category != o.category {
		return r.category < o.category
	}
	return r.total < o.total
}

// SelectDeveloper picks the least-loaded eligible developer for the category.
// Candidates sharing the best rank are drawn uniformly at random. Returns nil when eligible is empty.
func SelectDeveloper(load *LoadTracker, eligible []*Developer, category Category, rng *rand.Rand) *Developer {
	if len(eligible) == 0 {
		return nil
	}

	var best loadRank
	tied := make([]*Developer, 0, len(eligible))

	for i, dev := range eligible {
		counters := load.Counters(dev.Name)
		rank := loadRank{category: counters.Get(category), total: counters.Total()}

		switch {
		case i == 0 || rank.less(best):
			best = rank
			tied = append(tied[:0], dev)
		case rank == best:
			tied = append(tied, dev)
		}
	}

	if len(tied) == 1 {
		return tied[0]
	}
	return tied[rng.IntN(len(tied))]
}
