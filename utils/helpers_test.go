package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubtractDates(t *testing.T) {
	cases := []struct {
		name   string
		d1, d2 string
		want   int
	}{
		{"same day", "2024-01-15", "2024-01-15", 0},
		{"later minus earlier", "2024-01-20", "2024-01-15", 5},
		{"earlier minus later", "2024-01-10", "2024-01-15", -5},
		{"across months", "2024-02-05", "2024-01-15", 21},
		{"across a leap year", "2025-01-01", "2024-01-01", 366},
		{"time parts are ignored", "2024-01-20T18:30:00.000Z", "2024-01-15T01:00:00.000Z", 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SubtractDates(tc.d1, tc.d2)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSubtractDatesRejectsGarbage(t *testing.T) {
	_, err := SubtractDates("not-a-date", "2024-01-01")
	assert.Error(t, err)
}

func TestGetToday(t *testing.T) {
	start := GetToday()
	end := GetToday(TodayOptions{End: true})

	assert.True(t, strings.HasSuffix(start, "T00:00:00.000Z"), "start %q", start)
	assert.True(t, strings.HasSuffix(end, "T23:59:59.999Z"), "end %q", end)

	// both edges sit on the same calendar date
	assert.Equal(t, start[:10], end[:10])

	parsed, err := ParseISO(start)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		value float64
		want  string
	}{
		{5000, "$5,000.00"},
		{10, "$10.00"},
		{0, "$0.00"},
		{0.5, "$0.50"},
		{1234.567, "$1,234.57"},
		{1000000, "$1,000,000.00"},
		{-500, "-$500.00"},
		{-1234.5, "-$1,234.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCurrency(tc.value), "value %v", tc.value)
	}
}

func TestFormatDistanceFromNow(t *testing.T) {
	now := time.Now().UTC()

	past := now.Add(-75 * time.Hour).Format(ISOMillis)
	assert.Equal(t, "3 days ago", FormatDistanceFromNow(past))

	future := now.Add(75 * time.Hour).Format(ISOMillis)
	assert.Equal(t, "In 3 days", FormatDistanceFromNow(future))

	recent := now.Add(-30 * time.Second).Format(ISOMillis)
	assert.Equal(t, "less than a minute ago", FormatDistanceFromNow(recent))
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("CABIN_TEST_KEY", "")
	assert.Equal(t, "fallback", EnvOrDefault("CABIN_TEST_KEY", "fallback"))

	t.Setenv("CABIN_TEST_KEY", "set")
	assert.Equal(t, "set", EnvOrDefault("CABIN_TEST_KEY", "fallback"))
}
