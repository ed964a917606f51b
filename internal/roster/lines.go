package roster

import (
	"fmt"
	"time"
)

const lineWorkDays = 5

// Line is one working day of a numbered bidding line.
type Line struct {
	LineNumber int       `json:"lineNumber"`
	Date       time.Time `json:"date"`
	Shift      Code      `json:"shift"`
	Department string    `json:"department"`
}

// LineCycle builds the unrotated cycle of a bidding line: three segments of
// five days on letters[(line+segment) mod 3], each followed by two OFF days.
func LineCycle(lineNumber int) []Code {
	letters := ThreeShiftPattern.Letters()
	var cycle []Code
	for shiftIdx := range letters {
		current := letters[(lineNumber+shiftIdx)%len(letters)]
		for i := 0; i < lineWorkDays; i++ {
			cycle = append(cycle, current)
		}
		for i := 0; i < offDaysPerSegment; i++ {
			cycle = append(cycle, CodeOff)
		}
	}
	return cycle
}

// GenerateLines lays out totalLines bidding lines, numbered from 1, over the
// month and returns one Line per working day. OFF days are not emitted.
func GenerateLines(totalLines, year, month int) ([]Line, error) {
	dates, err := MonthDates(year, month)
	if err != nil {
		return nil, err
	}
	if totalLines < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLineCount, totalLines)
	}
	var lines []Line
	for lineNumber := 1; lineNumber <= totalLines; lineNumber++ {
		pattern := repeatRotated(LineCycle(lineNumber), lineNumber, len(dates))
		for i, d := range dates {
			if !pattern[i].IsShift() {
				continue
			}
			lines = append(lines, Line{
				LineNumber: lineNumber,
				Date:       d,
				Shift:      pattern[i],
				Department: DefaultDepartment,
			})
		}
	}
	return lines, nil
}
