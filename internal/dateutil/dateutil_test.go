package dateutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptedFormats(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"2025-01-15", "2025-01-15"},
		{"2025-01-15 18:30:00", "2025-01-15"},
		{"15-01-2025", "2025-01-15"},
		{"15/01/2025", "2025-01-15"},
		{"  2025-01-15  ", "2025-01-15"},
	}
	for _, tc := range cases {
		got, err := Parse(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, Format(got), "input %q", tc.input)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-date", "2025-13-45", "15th Jan"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestDaysBetween(t *testing.T) {
	a := MidnightDate(2025, 1, 1)
	b := MidnightDate(2025, 1, 31)

	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, -30, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))

	// Time-of-day never affects the distance.
	assert.Equal(t, 30, DaysBetween(a.Add(23*60*60*1e9), b))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(MidnightDate(2025, 6, 1))
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-01"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, d.Equal(back.Time))
}

func TestDateJSONNull(t *testing.T) {
	var zero Date
	b, err := json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	var back Date
	require.NoError(t, json.Unmarshal([]byte("null"), &back))
	assert.True(t, back.IsZero())
}

func TestDateValueNullWhenZero(t *testing.T) {
	var zero Date
	v, err := zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	set := NewDate(MidnightDate(2025, 3, 10))
	v, err = set.Value()
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "05-01-2025", FormatDisplay(MidnightDate(2025, 1, 5)))
}
