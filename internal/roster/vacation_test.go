package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVacationCount(t *testing.T) {
	assert.Equal(t, 10, VacationCount(100, DefaultVacationFraction))
	assert.Equal(t, 2, VacationCount(25, DefaultVacationFraction))
	assert.Equal(t, 0, VacationCount(9, DefaultVacationFraction))
	assert.Equal(t, 0, VacationCount(0, DefaultVacationFraction))
	assert.Equal(t, 0, VacationCount(50, 0))
}

func TestSelectVacation(t *testing.T) {
	rng := NewRand(7)
	for _, n := range []int{0, 1, 9, 10, 25, 100, 257} {
		picked := SelectVacation(n, DefaultVacationFraction, rng)
		assert.Len(t, picked, VacationCount(n, DefaultVacationFraction))
		seen := map[int]bool{}
		for _, idx := range picked {
			assert.False(t, seen[idx], "index %d picked twice", idx)
			assert.GreaterOrEqual(t, idx, 0)
			assert.Less(t, idx, n)
			seen[idx] = true
		}
	}
}

func TestSelectVacationNonPositive(t *testing.T) {
	rng := NewRand(3)
	assert.Nil(t, SelectVacation(-5, DefaultVacationFraction, rng))
	assert.Nil(t, SelectVacation(0, 0.5, rng))
}

func TestSelectVacationSeeded(t *testing.T) {
	a := SelectVacation(100, DefaultVacationFraction, NewRand(99))
	b := SelectVacation(100, DefaultVacationFraction, NewRand(99))
	assert.Equal(t, a, b)
}

func TestSelectVacationCoversRoster(t *testing.T) {
	// every index should be reachable over enough draws
	rng := NewRand(1)
	hits := make([]int, 20)
	for i := 0; i < 2000; i++ {
		for _, idx := range SelectVacation(20, DefaultVacationFraction, rng) {
			hits[idx]++
		}
	}
	for idx, h := range hits {
		assert.Positive(t, h, "index %d never selected", idx)
	}
}
