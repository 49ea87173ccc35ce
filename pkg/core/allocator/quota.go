package allocator

import "fmt"

// CategoryTotals counts slots per category
type CategoryTotals struct {
	Special int
	Night   int
	Day     int
}

// CountCategories totals already-classified slots
func CountCategories(slots []Slot) CategoryTotals {
	var totals CategoryTotals
	for _, slot := range slots {
		switch slot.Category {
		case CategorySpecial:
			totals.Special++
		case CategoryNight:
			totals.Night++
		default:
			totals.Day++
		}
	}
	return totals
}

// PlanQuotas computes the shared ceilings: total/n + 1 for night and special.
// The +1 is given to every developer regardless of the remainder.
func PlanQuotas(totalNight, totalSpecial, rosterSize int) (Quotas, error) {
	if rosterSize < 1 {
		return Quotas{}, fmt.Errorf("%w: roster size %d", ErrEmptyRoster, rosterSize)
	}
	return Quotas{
		Night:   totalNight/rosterSize + 1,
		Special: totalSpecial/rosterSize + 1,
	}, nil
}
