package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineCycle(t *testing.T) {
	want := seq(
		repeatCode(CodeB, 5), repeatCode(CodeOff, 2),
		repeatCode(CodeC, 5), repeatCode(CodeOff, 2),
		repeatCode(CodeA, 5), repeatCode(CodeOff, 2),
	)
	assert.Equal(t, want, LineCycle(1))
	assert.Len(t, LineCycle(7), 21)
}

func TestGenerateLines(t *testing.T) {
	lines, err := GenerateLines(1, 2025, 10)
	require.NoError(t, err)
	// rotated by one: B4 OFF2 C5 OFF2 A5 OFF2 B1, then B4 OFF2 C4 for days 22-31
	require.Len(t, lines, 23)
	first := lines[0]
	assert.Equal(t, 1, first.LineNumber)
	assert.Equal(t, CodeB, first.Shift)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, DefaultDepartment, first.Department)
	assert.Equal(t, time.Date(2025, 10, 7, 0, 0, 0, 0, time.UTC), lines[4].Date)
	assert.Equal(t, CodeC, lines[4].Shift)
	for _, l := range lines {
		assert.True(t, l.Shift.IsShift())
	}
}

func TestGenerateLinesMany(t *testing.T) {
	lines, err := GenerateLines(5, 2024, 2)
	require.NoError(t, err)
	perLine := map[int]int{}
	for _, l := range lines {
		perLine[l.LineNumber]++
		assert.Equal(t, time.February, l.Date.Month())
	}
	assert.Len(t, perLine, 5)
	for n, c := range perLine {
		// 29 days cover one full 21 day cycle (15 working days) plus eight more
		assert.GreaterOrEqual(t, c, 19, "line %d", n)
		assert.LessOrEqual(t, c, 23, "line %d", n)
	}
}

func TestGenerateLinesErrors(t *testing.T) {
	_, err := GenerateLines(0, 2025, 10)
	assert.ErrorIs(t, err, ErrInvalidLineCount)
	_, err = GenerateLines(3, 2025, 14)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
