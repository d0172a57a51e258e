package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOtpCode(t *testing.T) {
	otp, err := GenerateOtpCode(6)
	require.NoError(t, err)
	assert.Len(t, otp, 6)
	assert.Regexp(t, `^[0-9]{6}$`, otp)
}

func TestGenerateOtpCode_InvalidLength(t *testing.T) {
	_, err := GenerateOtpCode(0)
	assert.Error(t, err)

	_, err = GenerateOtpCode(-1)
	assert.Error(t, err)
}

// Every digit should show up over enough draws; a generator that maps raw
// bytes straight through modulo ten would still pass this, but one that
// dropped or skewed whole digits would not.
func TestGenerateOtpCode_AllDigitsReachable(t *testing.T) {
	seen := map[byte]int{}
	for i := 0; i < 500; i++ {
		otp, err := GenerateOtpCode(6)
		require.NoError(t, err)
		for j := 0; j < len(otp); j++ {
			seen[otp[j]]++
		}
	}

	for d := byte('0'); d <= '9'; d++ {
		assert.Greater(t, seen[d], 0, "digit %c never generated", d)
	}
}
