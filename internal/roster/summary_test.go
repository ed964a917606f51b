package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeFoldsStandbyIntoBase(t *testing.T) {
	dates, err := MonthDates(2025, 2)
	require.NoError(t, err)
	dates = dates[:2]
	d1, d2 := DateKey(dates[0]), DateKey(dates[1])
	employees := []Employee{{ID: "E1"}, {ID: "E2"}, {ID: "E3"}}
	schedule := Schedule{
		"E1": {d1: CodeStandbyA, d2: CodeA},
		"E2": {d1: CodeB, d2: CodeOff},
		"E3": {d1: CodeVacation, d2: CodeVacation},
	}

	s := Summarize(schedule, dates, employees)
	assert.Equal(t, 3, s.TotalEmployees)
	assert.Equal(t, 2, s.TotalDays)
	require.Len(t, s.DailyCoverage, 2)
	assert.Equal(t, DailyCoverage{Date: d1, A: 1, B: 1, Vacation: 1, Standby: 1}, s.DailyCoverage[0])
	assert.Equal(t, DailyCoverage{Date: d2, A: 1, Off: 1, Vacation: 1}, s.DailyCoverage[1])
	for _, cov := range s.DailyCoverage {
		assert.Equal(t, len(employees), cov.Total())
	}

	assert.Equal(t, EmployeeStats{A: 1, Standby: 1}, s.EmployeeStats["E1"])
	assert.Equal(t, EmployeeStats{B: 1, Off: 1}, s.EmployeeStats["E2"])
	assert.Equal(t, EmployeeStats{Vacation: 2}, s.EmployeeStats["E3"])
	for id, st := range s.EmployeeStats {
		assert.Equal(t, len(dates), st.Total(), id)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(Schedule{}, []time.Time{}, nil)
	assert.Zero(t, s.TotalEmployees)
	assert.Empty(t, s.DailyCoverage)
	assert.Empty(t, s.EmployeeStats)
}
