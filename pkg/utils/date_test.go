package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{input: "2023-01-15", want: time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)},
		{input: "2023-02", want: time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)},
		{input: " 2022 ", want: time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2023-03-10 14:30:00", want: time.Date(2023, time.March, 10, 14, 30, 0, 0, time.UTC)},
		{input: "2023-04-01T00:00:00Z", want: time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC)},
		{input: "2023/05/20", want: time.Date(2023, time.May, 20, 0, 0, 0, 0, time.UTC)},
		{input: "06/30/2023", want: time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)},
		{input: "Jul 2023", want: time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{input: "August 2023", want: time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "esperado %s, obtido %s", tt.want, got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "2023-13", "ontem", "31/12/2023"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input)
			assert.Error(t, err)
		})
	}
}

func TestFirstDayOfMonthAndYear(t *testing.T) {
	date := time.Date(2023, time.September, 17, 22, 5, 0, 0, time.FixedZone("BRT", -3*60*60))

	assert.Equal(t, time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC), FirstDayOfMonth(date))
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), FirstDayOfYear(date))
}

func TestGenerateID(t *testing.T) {
	first, err := GenerateID()
	require.NoError(t, err)
	second, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, first, 8)
	assert.Regexp(t, "^[A-Za-z0-9]{8}$", first)
	assert.NotEqual(t, first, second)
}
