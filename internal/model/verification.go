package model

import "time"

// VerificationCodeDuration is the lifetime of a verification code.
const VerificationCodeDuration = 10 * time.Minute

// PendingCode is an outstanding email verification code bound to one account.
type PendingCode struct {
	Code      string
	ExpiresAt time.Time
}

// Expired reports whether the code is no longer usable at now.
func (c PendingCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
