package entity

import (
	"errors"
	"time"
)

var (
	// ErrNotRequested is returned when no challenge exists for a mobile number.
	ErrNotRequested = errors.New("no passcode was requested for this number")
)

// Challenge represents one outstanding passcode challenge for a mobile number.
//
// At most one live challenge exists per mobile at any instant; storing a new
// one replaces any prior challenge for that number. The raw code is never
// stored, only its bcrypt hash.
type Challenge struct {
	// Mobile is the 10-digit lookup key.
	Mobile string `json:"mobile"`
	// CodeHash is the bcrypt hash of the 6-digit code.
	CodeHash string `json:"code_hash"`
	// IssuedAt is the creation time.
	IssuedAt time.Time `json:"issued_at"`
	// ExpiresAt is IssuedAt plus the validity window.
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the challenge is past its validity window at the
// given instant.
func (c Challenge) ExpiredAt(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Verdict is the outcome of judging a candidate code against a challenge.
type Verdict int

const (
	// VerdictMismatch means the candidate did not match; the challenge is retained.
	VerdictMismatch Verdict = iota
	// VerdictExpired means the challenge is past its window; it is evicted.
	VerdictExpired
	// VerdictApproved means the candidate matched in time; the challenge is evicted.
	VerdictApproved
)

// String returns the verdict name for logging.
func (v Verdict) String() string {
	switch v {
	case VerdictApproved:
		return "approved"
	case VerdictExpired:
		return "expired"
	default:
		return "mismatch"
	}
}

// Evicts reports whether the verdict removes the challenge from the ledger.
func (v Verdict) Evicts() bool {
	return v == VerdictApproved || v == VerdictExpired
}
