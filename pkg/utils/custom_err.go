package utils

import (
	"errors"
	"fmt"
)

var (
	ErrOwnerNotFound      = errors.New("owner not found")
	ErrInvalidInvoice     = errors.New("invoice not found")
	ErrDuplicateInvoiceId = errors.New("invoice number already exists")
	ErrAlreadySubmitted   = errors.New("feedback already submitted")
	ErrAIAssistLimit      = errors.New("ai assist limit reached")
	ErrCouponRedemption   = errors.New("coupon expired, used or mismatched")
	ErrCouponNotFound     = errors.New("coupon not found")

	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already taken")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidResetToken     = errors.New("invalid or expired reset token")

	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")
	ErrUpstreamFailure = errors.New("upstream service failure")
)

// RateLimitError carries the retry-after hint for the 429 response.
// It is an expected outcome, not a fault.
type RateLimitError struct {
	HoursRemaining int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("daily invoice limit reached, try again in %dh", e.HoursRemaining)
}
