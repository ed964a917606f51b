package roster

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the key format used for dates in a Schedule.
const DateLayout = "2006-01-02"

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthDates returns every day of the month in ascending order, at UTC midnight.
func MonthDates(year, month int) ([]time.Time, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	var dates []time.Time
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// DateKey formats a date as a Schedule key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseMonthName resolves an English month name to 1..12. Matching is exact and case-sensitive.
func ParseMonthName(name string) (int, error) {
	for i, n := range monthNames {
		if n == name {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %w: %q", ErrInvalidMonth, ErrUnknownMonthName, name)
}

// MonthName returns the English name for month, or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// ResolveMonth normalizes a caller supplied month, either "1".."12" or a month name.
func ResolveMonth(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: month is required", ErrInvalidMonth)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, n)
		}
		return n, nil
	}
	return ParseMonthName(s)
}
