package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformSchedule(t *testing.T, ids []string, code Code, days int) (Schedule, []Employee) {
	t.Helper()
	all, err := MonthDates(2025, 10)
	require.NoError(t, err)
	schedule := Schedule{}
	var emps []Employee
	for _, id := range ids {
		schedule[id] = map[string]Code{}
		for _, d := range all[:days] {
			schedule[id][DateKey(d)] = code
		}
		emps = append(emps, Employee{ID: id})
	}
	return schedule, emps
}

func TestAllocateStandbyRotatesFairly(t *testing.T) {
	schedule, emps := uniformSchedule(t, []string{"e1", "e2", "e3"}, CodeA, 5)
	dates, _ := MonthDates(2025, 10)
	dates = dates[:5]

	counts := AllocateStandby(schedule, dates, emps, 2, 3)

	expect := map[string][]Code{
		"e1": {CodeStandbyA, CodeStandbyA, CodeA, CodeStandbyA, CodeA},
		"e2": {CodeStandbyA, CodeA, CodeStandbyA, CodeStandbyA, CodeA},
		"e3": {CodeA, CodeStandbyA, CodeStandbyA, CodeA, CodeStandbyA},
	}
	for id, want := range expect {
		for i, d := range dates {
			assert.Equal(t, want[i], schedule[id][DateKey(d)], "%s day %d", id, i)
		}
		assert.Equal(t, 3, counts[id])
	}
}

func TestAllocateStandbyCappedCandidateKeepsSlot(t *testing.T) {
	// On the fifth day e1 is among the two candidates but already capped: only
	// e3 converts and e2 is never considered.
	schedule, emps := uniformSchedule(t, []string{"e1", "e2", "e3"}, CodeA, 5)
	dates, _ := MonthDates(2025, 10)
	fifth := DateKey(dates[4])

	AllocateStandby(schedule, dates[:5], emps, 2, 3)

	assert.Equal(t, CodeA, schedule["e1"][fifth])
	assert.Equal(t, CodeA, schedule["e2"][fifth])
	assert.Equal(t, CodeStandbyA, schedule["e3"][fifth])
}

func TestAllocateStandbySkipsOffAndUnavailable(t *testing.T) {
	schedule, emps := uniformSchedule(t, []string{"off1", "off2"}, CodeOff, 3)
	vac, _ := uniformSchedule(t, []string{"v1"}, CodeVacation, 3)
	schedule["v1"] = vac["v1"]
	dates, _ := MonthDates(2025, 10)

	counts := AllocateStandby(schedule, dates[:3], emps, 12, 3)

	assert.Empty(t, counts)
	for _, d := range dates[:3] {
		assert.Equal(t, CodeOff, schedule["off1"][DateKey(d)])
		assert.Equal(t, CodeVacation, schedule["v1"][DateKey(d)])
	}
}

func TestAllocateStandbyPerShiftLimit(t *testing.T) {
	ids := make([]string, 40)
	for i := range ids {
		ids[i] = string(rune('a'+i/26)) + string(rune('a'+i%26))
	}
	schedule, emps := uniformSchedule(t, ids, CodeB, 1)
	dates, _ := MonthDates(2025, 10)

	AllocateStandby(schedule, dates[:1], emps, 12, 3)

	converted := 0
	for i, id := range ids {
		if schedule[id][DateKey(dates[0])] == CodeStandbyB {
			converted++
			assert.Less(t, i, 12, "only the first twelve in roster order convert")
		}
	}
	assert.Equal(t, 12, converted)
}

func TestAllocateStandbyCapZero(t *testing.T) {
	dates, _ := MonthDates(2025, 10)
	key := DateKey(dates[0])
	schedule := Schedule{
		"x": {key: CodeA},
		"y": {key: CodeC},
	}
	emps := []Employee{{ID: "x"}, {ID: "y"}}

	counts := AllocateStandby(schedule, dates[:1], emps, 12, 0)
	assert.Equal(t, CodeA, schedule["x"][key])
	assert.Equal(t, CodeC, schedule["y"][key])
	assert.Zero(t, counts["x"])

	counts = AllocateStandby(schedule, dates[:1], emps, 12, 1)
	assert.Equal(t, CodeStandbyA, schedule["x"][key])
	assert.Equal(t, CodeStandbyC, schedule["y"][key])
	assert.Equal(t, 1, counts["y"])
}
