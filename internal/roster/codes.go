package roster

import "strings"

// Code is the assignment held by one employee on one date.
type Code string

const (
	CodeA        Code = "A"
	CodeB        Code = "B"
	CodeC        Code = "C"
	CodeOff      Code = "OFF"
	CodeVacation Code = "VACATION"
	CodeStandbyA Code = "STANDBY_A"
	CodeStandbyB Code = "STANDBY_B"
	CodeStandbyC Code = "STANDBY_C"
)

const standbyPrefix = "STANDBY_"

// Codes lists every valid assignment code.
var Codes = []Code{CodeA, CodeB, CodeC, CodeOff, CodeVacation, CodeStandbyA, CodeStandbyB, CodeStandbyC}

// Valid reports whether c is one of the fixed assignment codes.
func (c Code) Valid() bool {
	for _, v := range Codes {
		if c == v {
			return true
		}
	}
	return false
}

// IsShift reports whether c is a base shift letter.
func (c Code) IsShift() bool {
	return c == CodeA || c == CodeB || c == CodeC
}

// IsStandby reports whether c is one of the STANDBY_* codes.
func (c Code) IsStandby() bool {
	return strings.HasPrefix(string(c), standbyPrefix) && c.Valid()
}

// Standby returns the standby variant of a shift letter.
func (c Code) Standby() Code {
	if !c.IsShift() {
		return c
	}
	return Code(standbyPrefix + string(c))
}

// Base returns the shift letter underneath a standby code, or c itself.
func (c Code) Base() Code {
	if c.IsStandby() {
		return Code(strings.TrimPrefix(string(c), standbyPrefix))
	}
	return c
}

// Shift describes one of the rotating base work periods.
type Shift struct {
	Code  Code   `json:"code"`
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Shifts is the catalogue of base shifts in rotation order.
var Shifts = []Shift{
	{Code: CodeA, Name: "Morning", Start: "07:00", End: "15:00"},
	{Code: CodeB, Name: "Evening", Start: "15:00", End: "23:00"},
	{Code: CodeC, Name: "Night", Start: "23:00", End: "07:00"},
}

// shiftLetters is the allocation order used by the standby pass.
var shiftLetters = []Code{CodeA, CodeB, CodeC}
