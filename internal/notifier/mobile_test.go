package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMobile(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"9876543210", "919876543210"},
		{"919876543210", "919876543210"},
		{"+919876543210", "919876543210"},
		{"98765 43210", "919876543210"},
		{"98765-43210", "919876543210"},
		{"(987) 654-3210", "919876543210"},
		{"  9876543210  ", "919876543210"},
	}
	for _, tc := range cases {
		got, err := NormalizeMobile(tc.input, "91")
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestNormalizeMobileRejects(t *testing.T) {
	for _, input := range []string{"", "12345", "98765abc10", "987-654", "call me"} {
		_, err := NormalizeMobile(input, "91")
		assert.ErrorIs(t, err, ErrInvalidMobile, "input %q", input)
	}
}
