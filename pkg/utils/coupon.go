package utils

import (
	"crypto/rand"
	"errors"
	"strconv"
	"time"
)

const couponPrefixLen = 4

const couponAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CouponCode holds both forms of a derived coupon code.
//
// DBForm is what gets stored and shown to the owner: the base code with the
// owner's invoice ordinal appended. QRForm is what goes into the QR payload:
// four random characters prepended to DBForm, so the public value cannot be
// guessed from the code structure alone.
type CouponCode struct {
	DBForm string
	QRForm string
}

// DeriveCouponCode builds both coupon forms for the given base code and
// per-owner ordinal. The random prefix comes from a CSPRNG; rejection
// sampling keeps the alphabet selection uniform.
func DeriveCouponCode(baseCode string, ordinal int64) (CouponCode, error) {
	if baseCode == "" {
		return CouponCode{}, errors.New("empty coupon base code")
	}
	if ordinal <= 0 {
		return CouponCode{}, errors.New("coupon ordinal must be positive")
	}

	prefix := make([]byte, 0, couponPrefixLen)
	buf := make([]byte, 1)
	for len(prefix) < couponPrefixLen {
		if _, err := rand.Read(buf); err != nil {
			return CouponCode{}, err
		}
		// 252 is the largest multiple of 36 below 256
		if buf[0] >= 252 {
			continue
		}
		prefix = append(prefix, couponAlphabet[int(buf[0])%len(couponAlphabet)])
	}

	dbForm := baseCode + strconv.FormatInt(ordinal, 10)
	return CouponCode{
		DBForm: dbForm,
		QRForm: string(prefix) + dbForm,
	}, nil
}

// StripCouponPrefix removes the random QR prefix from a presented code,
// returning the candidate DB form. Codes shorter than the prefix cannot
// match anything.
func StripCouponPrefix(presented string) (string, bool) {
	if len(presented) <= couponPrefixLen {
		return "", false
	}
	return presented[couponPrefixLen:], true
}

// CouponRedeemable checks the stored DB form against a presented QR-form
// code plus the expiry and one-time-use flags.
func CouponRedeemable(storedDBForm string, presented string, expiresAt int64, isUsed bool, now time.Time) bool {
	candidate, ok := StripCouponPrefix(presented)
	if !ok {
		return false
	}
	if candidate != storedDBForm {
		return false
	}
	if isUsed {
		return false
	}
	return now.Unix() < expiresAt
}

// CouponExpiry computes the expiry timestamp for a caller-supplied number
// of days from now.
func CouponExpiry(now time.Time, expiryDays int) int64 {
	return now.Add(time.Duration(expiryDays) * 24 * time.Hour).Unix()
}
