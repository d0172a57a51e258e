package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveCouponCode(t *testing.T) {
	code, err := DeriveCouponCode("SAVE", 1)
	require.NoError(t, err)

	assert.Equal(t, "SAVE1", code.DBForm)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{4}SAVE1$`), code.QRForm)
}

func TestDeriveCouponCode_OrdinalGrows(t *testing.T) {
	first, err := DeriveCouponCode("OFF", 7)
	require.NoError(t, err)
	second, err := DeriveCouponCode("OFF", 8)
	require.NoError(t, err)

	assert.Equal(t, "OFF7", first.DBForm)
	assert.Equal(t, "OFF8", second.DBForm)
	assert.NotEqual(t, first.DBForm, second.DBForm)
}

func TestDeriveCouponCode_Invalid(t *testing.T) {
	_, err := DeriveCouponCode("", 1)
	assert.Error(t, err)

	_, err = DeriveCouponCode("SAVE", 0)
	assert.Error(t, err)

	_, err = DeriveCouponCode("SAVE", -3)
	assert.Error(t, err)
}

func TestStripCouponPrefix(t *testing.T) {
	tests := []struct {
		name      string
		presented string
		want      string
		ok        bool
	}{
		{name: "valid token", presented: "X9K2SAVE1", want: "SAVE1", ok: true},
		{name: "exactly prefix length", presented: "X9K2", want: "", ok: false},
		{name: "shorter than prefix", presented: "X9", want: "", ok: false},
		{name: "empty", presented: "", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StripCouponPrefix(tt.presented)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCouponRedeemable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour).Unix()
	past := now.Add(-time.Hour).Unix()

	tests := []struct {
		name      string
		stored    string
		presented string
		expiresAt int64
		isUsed    bool
		want      bool
	}{
		{name: "valid", stored: "SAVE1", presented: "AB12SAVE1", expiresAt: future, want: true},
		{name: "wrong code after prefix", stored: "SAVE1", presented: "AB12SAVE2", expiresAt: future, want: false},
		{name: "missing prefix", stored: "SAVE1", presented: "SAVE1", expiresAt: future, want: false},
		{name: "already used", stored: "SAVE1", presented: "AB12SAVE1", expiresAt: future, isUsed: true, want: false},
		{name: "expired", stored: "SAVE1", presented: "AB12SAVE1", expiresAt: past, want: false},
		{name: "too short", stored: "SAVE1", presented: "AB1", expiresAt: future, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CouponRedeemable(tt.stored, tt.presented, tt.expiresAt, tt.isUsed, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCouponExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(30*24*time.Hour).Unix(), CouponExpiry(now, 30))
	assert.Equal(t, now.Add(24*time.Hour).Unix(), CouponExpiry(now, 1))
}
