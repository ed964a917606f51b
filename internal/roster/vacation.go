package roster

import (
	"math"
	"math/rand/v2"
)

// DefaultVacationFraction is the share of the roster placed on vacation for a whole month.
const DefaultVacationFraction = 0.10

// VacationCount returns floor(n * fraction).
func VacationCount(n int, fraction float64) int {
	if n <= 0 || fraction <= 0 {
		return 0
	}
	c := int(math.Floor(float64(n) * fraction))
	if c > n {
		return n
	}
	return c
}

// SelectVacation shuffles the indices 0..n-1 with a right-to-left Fisher-Yates
// pass and returns the first VacationCount(n, fraction) of them.
func SelectVacation(n int, fraction float64, rng *rand.Rand) []int {
	if n <= 0 {
		return nil
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices[:VacationCount(n, fraction)]
}
