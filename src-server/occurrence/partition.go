package occurrence

import (
	"sort"
	"time"
)

// Partition splits definitions into not-yet-ended and ended lists, both
// sorted ascending by start date. One time-comparison policy serves the
// calendar and the list views:
//
//   - explicit end date+time strictly before now: past
//   - recurring with no end date: always current, no matter how old the
//     series start is (open-ended weekly series never expire)
//   - otherwise: start instant strictly before now means past
func Partition(defs []Definition, now time.Time) (current []Definition, past []Definition) {
	current = make([]Definition, 0, len(defs))
	past = make([]Definition, 0)

	for _, def := range defs {
		if ended(def, now) {
			past = append(past, def)
		} else {
			current = append(current, def)
		}
	}

	sortByStartDate(current)
	sortByStartDate(past)
	return current, past
}

func ended(def Definition, now time.Time) bool {
	if endsAt, ok, err := def.EndsAt(now.Location()); err == nil && ok {
		return endsAt.Before(now)
	}

	if def.IsRecurring && def.EndDate == "" {
		return false
	}

	startsAt, err := def.StartsAt(now.Location())
	if err != nil {
		// a definition we can't place in time stays visible
		return false
	}
	return startsAt.Before(now)
}

func sortByStartDate(defs []Definition) {
	// ISO date strings order lexicographically
	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].Date < defs[j].Date
	})
}
