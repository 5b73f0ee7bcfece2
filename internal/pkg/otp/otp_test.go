package otp

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fiveDigits = regexp.MustCompile(`^\d{5}$`)

func TestNew_FormatAndRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := New()
		require.NoError(t, err)
		assert.True(t, fiveDigits.MatchString(code), "code %q must be 5 digits", code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000)
		assert.LessOrEqual(t, n, 99999)
	}
}

func TestNew_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := New()
		require.NoError(t, err)
		seen[code] = true
	}
	// 50 draws from a 90k space colliding down to a single value would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 1)
}
