package roster

import "fmt"

// PatternKind selects the rotation an employee follows.
type PatternKind int

const (
	// ThreeShiftPattern rotates A, B and C. It is the default for unlisted departments.
	ThreeShiftPattern PatternKind = iota
	// TwoShiftPattern rotates A and B only.
	TwoShiftPattern
)

// DefaultDepartment is the category assumed for employees without a department.
const DefaultDepartment = "General"

const offDaysPerSegment = 2

func (k PatternKind) String() string {
	switch k {
	case TwoShiftPattern:
		return "two-shift"
	case ThreeShiftPattern:
		return "three-shift"
	default:
		return fmt.Sprintf("PatternKind(%d)", int(k))
	}
}

// Letters returns the shift letters the pattern rotates through.
func (k PatternKind) Letters() []Code {
	if k == TwoShiftPattern {
		return []Code{CodeA, CodeB}
	}
	return []Code{CodeA, CodeB, CodeC}
}

// DefaultDepartmentPatterns routes departments to a pattern. Departments not
// listed use ThreeShiftPattern.
func DefaultDepartmentPatterns() map[string]PatternKind {
	return map[string]PatternKind{
		"Station Staff": TwoShiftPattern,
		"Supervisors":   TwoShiftPattern,
	}
}

// BaseCycle builds the unrotated cycle for an employee: for each segment the
// shift letter is letters[(empIdx+segment) mod k], worked for 5 days when
// empIdx+segment is even and 6 otherwise, followed by two OFF days.
func BaseCycle(empIdx int, kind PatternKind) []Code {
	letters := kind.Letters()
	k := len(letters)
	var cycle []Code
	for shiftIdx := 0; shiftIdx < k; shiftIdx++ {
		current := letters[(empIdx+shiftIdx)%k]
		workDays := 6
		if (empIdx+shiftIdx)%2 == 0 {
			workDays = 5
		}
		for i := 0; i < workDays; i++ {
			cycle = append(cycle, current)
		}
		for i := 0; i < offDaysPerSegment; i++ {
			cycle = append(cycle, CodeOff)
		}
	}
	return cycle
}

// ShiftPattern returns totalDays codes for the employee at position empIdx,
// repeating its base cycle rotated left by empIdx mod len(cycle).
func ShiftPattern(empIdx int, kind PatternKind, totalDays int) []Code {
	return repeatRotated(BaseCycle(empIdx, kind), empIdx, totalDays)
}

func repeatRotated(cycle []Code, offset, totalDays int) []Code {
	if totalDays <= 0 || len(cycle) == 0 {
		return []Code{}
	}
	offset %= len(cycle)
	rotated := make([]Code, 0, len(cycle))
	rotated = append(rotated, cycle[offset:]...)
	rotated = append(rotated, cycle[:offset]...)
	pattern := make([]Code, totalDays)
	for i := range pattern {
		pattern[i] = rotated[i%len(rotated)]
	}
	return pattern
}
