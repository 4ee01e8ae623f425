package curve

import (
	"sort"
	"time"
)

// findBracketOrBoundary finds two adjacent dates that bracket the target.
// If the target is outside the range, returns the nearest boundary pair.
//
// This is useful for extrapolation where we still want the two nearest dates.
func findBracketOrBoundary(dates []time.Time, target time.Time) (d1, d2 time.Time) {
	if len(dates) < 2 {
		panic("findBracketOrBoundary: need at least 2 dates")
	}

	// Binary search for first date >= target
	idx := sort.Search(len(dates), func(i int) bool {
		return !dates[i].Before(target)
	})

	if idx <= 0 {
		// target is before or equal to first date
		return dates[0], dates[1]
	}
	if idx >= len(dates) {
		// target is after all dates
		return dates[len(dates)-2], dates[len(dates)-1]
	}

	// Normal case: dates[idx-1] < target <= dates[idx]
	return dates[idx-1], dates[idx]
}
