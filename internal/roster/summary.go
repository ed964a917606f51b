package roster

import "time"

// DailyCoverage counts the roster by category on one date. Standby cells are
// counted under their base letter; Standby reports how many of A, B and C are
// on standby and is not part of the category sum.
type DailyCoverage struct {
	Date     string `json:"date"`
	A        int    `json:"A"`
	B        int    `json:"B"`
	C        int    `json:"C"`
	Off      int    `json:"OFF"`
	Vacation int    `json:"VACATION"`
	Standby  int    `json:"standby"`
}

// Total returns A+B+C+OFF+VACATION.
func (d DailyCoverage) Total() int {
	return d.A + d.B + d.C + d.Off + d.Vacation
}

// EmployeeStats counts one employee's month by category. All STANDBY_*
// variants are aggregated in Standby and not counted under their letter.
type EmployeeStats struct {
	A        int `json:"A"`
	B        int `json:"B"`
	C        int `json:"C"`
	Off      int `json:"OFF"`
	Vacation int `json:"VACATION"`
	Standby  int `json:"STANDBY"`
}

// Total returns the number of days counted for the employee.
func (s EmployeeStats) Total() int {
	return s.A + s.B + s.C + s.Off + s.Vacation + s.Standby
}

// Summary is the read-only view of a generated schedule.
type Summary struct {
	TotalEmployees int                      `json:"totalEmployees"`
	TotalDays      int                      `json:"totalDays"`
	DailyCoverage  []DailyCoverage          `json:"dailyCoverage"`
	EmployeeStats  map[string]EmployeeStats `json:"employeeStats"`
}

// Summarize computes per-date coverage and per-employee totals.
func Summarize(schedule Schedule, dates []time.Time, employees []Employee) Summary {
	summary := Summary{
		TotalEmployees: len(employees),
		TotalDays:      len(dates),
		DailyCoverage:  make([]DailyCoverage, 0, len(dates)),
		EmployeeStats:  make(map[string]EmployeeStats, len(employees)),
	}
	for _, date := range dates {
		key := DateKey(date)
		cov := DailyCoverage{Date: key}
		for _, emp := range employees {
			code := schedule[emp.ID][key]
			if code.IsStandby() {
				cov.Standby++
			}
			switch code.Base() {
			case CodeA:
				cov.A++
			case CodeB:
				cov.B++
			case CodeC:
				cov.C++
			case CodeOff:
				cov.Off++
			case CodeVacation:
				cov.Vacation++
			}
		}
		summary.DailyCoverage = append(summary.DailyCoverage, cov)
	}
	for _, emp := range employees {
		var stats EmployeeStats
		for _, code := range schedule[emp.ID] {
			switch code {
			case CodeA:
				stats.A++
			case CodeB:
				stats.B++
			case CodeC:
				stats.C++
			case CodeOff:
				stats.Off++
			case CodeVacation:
				stats.Vacation++
			case CodeStandbyA, CodeStandbyB, CodeStandbyC:
				stats.Standby++
			}
		}
		summary.EmployeeStats[emp.ID] = stats
	}
	return summary
}
