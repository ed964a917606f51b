package roster

import "errors"

// Sentinel errors returned by the roster core.
var (
	// ErrInvalidMonth is returned when a month is outside 1..12 or cannot be resolved.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrUnknownMonthName is returned when a month name is not one of the twelve
	// English month names. Errors wrapping it also match ErrInvalidMonth.
	ErrUnknownMonthName = errors.New("unknown month name")

	// ErrEmptyEmployeeList is returned when generation is requested for zero employees.
	ErrEmptyEmployeeList = errors.New("employee list is empty")

	// ErrDuplicateEmployee is returned when two employees share an ID.
	ErrDuplicateEmployee = errors.New("duplicate employee id")

	// ErrInvalidLineCount is returned when bidding lines are requested for fewer than one line.
	ErrInvalidLineCount = errors.New("invalid line count")

	// ErrInvalidPolicy is returned when a Policy carries out-of-range values.
	ErrInvalidPolicy = errors.New("invalid roster policy")
)
