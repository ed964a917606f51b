package roster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthDates(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		want  int
	}{
		{"leap february", 2024, 2, 29},
		{"plain february", 2023, 2, 28},
		{"october", 2025, 10, 31},
		{"april", 2025, 4, 30},
		{"december", 2025, 12, 31},
		{"century non-leap", 1900, 2, 28},
		{"quad-century leap", 2000, 2, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates, err := MonthDates(tt.year, tt.month)
			require.NoError(t, err)
			require.Len(t, dates, tt.want)
			assert.Equal(t, time.Date(tt.year, time.Month(tt.month), 1, 0, 0, 0, 0, time.UTC), dates[0])
			for i := 1; i < len(dates); i++ {
				assert.Equal(t, dates[i-1].AddDate(0, 0, 1), dates[i], "gap at index %d", i)
			}
		})
	}
}

func TestMonthDatesDeterministic(t *testing.T) {
	a, err := MonthDates(2025, 10)
	require.NoError(t, err)
	b, err := MonthDates(2025, 10)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMonthDatesInvalid(t *testing.T) {
	for _, m := range []int{0, 13, -1} {
		dates, err := MonthDates(2025, m)
		assert.ErrorIs(t, err, ErrInvalidMonth)
		assert.Nil(t, dates)
	}
}

func TestParseMonthName(t *testing.T) {
	m, err := ParseMonthName("October")
	require.NoError(t, err)
	assert.Equal(t, 10, m)

	for _, name := range []string{"october", "OCTOBER", "Oct", " October", ""} {
		_, err := ParseMonthName(name)
		assert.ErrorIs(t, err, ErrUnknownMonthName, name)
		assert.ErrorIs(t, err, ErrInvalidMonth, name)
	}
}

func TestResolveMonth(t *testing.T) {
	for i := 1; i <= 12; i++ {
		byName, err := ResolveMonth(MonthName(i))
		require.NoError(t, err)
		assert.Equal(t, i, byName)
	}
	n, err := ResolveMonth("2")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, s := range []string{"0", "13", "", "Febuary"} {
		_, err := ResolveMonth(s)
		assert.ErrorIs(t, err, ErrInvalidMonth, s)
	}

	byNum, err := MonthDates(2024, 2)
	require.NoError(t, err)
	feb, err := ResolveMonth("February")
	require.NoError(t, err)
	byName, err := MonthDates(2024, feb)
	require.NoError(t, err)
	assert.Equal(t, byNum, byName)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "January", MonthName(1))
	assert.Equal(t, "December", MonthName(12))
	assert.Empty(t, MonthName(0))
	assert.Empty(t, MonthName(13))
}
