package roster

import (
	"slices"
	"time"
)

const (
	// DefaultStandbyPerShift is the number of standby candidates taken per date and shift.
	DefaultStandbyPerShift = 12
	// DefaultStandbyCap is the most standby days one employee gets in a month.
	DefaultStandbyCap = 3
)

// AllocateStandby converts base shift cells of available employees into
// STANDBY_<letter> in place and returns the per-employee standby counts.
//
// For every date and letter the employees holding that letter are ordered by
// their running standby count (stable, so ties keep roster order) and the first
// perShift of them are considered. A considered employee already at
// maxPerEmployee keeps the shift and the slot is not given to anyone else.
func AllocateStandby(schedule Schedule, dates []time.Time, available []Employee, perShift, maxPerEmployee int) map[string]int {
	counts := make(map[string]int, len(available))
	for _, date := range dates {
		key := DateKey(date)
		for _, letter := range shiftLetters {
			var candidates []string
			for _, emp := range available {
				if schedule[emp.ID][key] == letter {
					candidates = append(candidates, emp.ID)
				}
			}
			slices.SortStableFunc(candidates, func(a, b string) int {
				return counts[a] - counts[b]
			})
			take := min(perShift, len(candidates))
			for _, id := range candidates[:take] {
				if counts[id] < maxPerEmployee {
					schedule[id][key] = letter.Standby()
					counts[id]++
				}
			}
		}
	}
	return counts
}
