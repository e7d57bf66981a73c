package entity

import (
	"testing"
	"time"
)

func TestChallengeExpiredAt(t *testing.T) {
	expiry := time.Date(2025, 6, 1, 10, 5, 0, 0, time.UTC)
	ch := Challenge{ExpiresAt: expiry}

	if ch.ExpiredAt(expiry.Add(-time.Second)) {
		t.Error("challenge reported expired before the window closed")
	}
	if ch.ExpiredAt(expiry) {
		t.Error("challenge reported expired exactly at the boundary")
	}
	if !ch.ExpiredAt(expiry.Add(time.Second)) {
		t.Error("challenge not reported expired after the window")
	}
}

func TestVerdictEvicts(t *testing.T) {
	tests := []struct {
		verdict Verdict
		want    bool
	}{
		{VerdictMismatch, false},
		{VerdictExpired, true},
		{VerdictApproved, true},
	}

	for _, tt := range tests {
		if got := tt.verdict.Evicts(); got != tt.want {
			t.Errorf("%s.Evicts() = %v, want %v", tt.verdict, got, tt.want)
		}
	}
}

func TestVerdictString(t *testing.T) {
	if got := VerdictApproved.String(); got != "approved" {
		t.Errorf("approved verdict string = %q", got)
	}
	if got := VerdictExpired.String(); got != "expired" {
		t.Errorf("expired verdict string = %q", got)
	}
	if got := VerdictMismatch.String(); got != "mismatch" {
		t.Errorf("mismatch verdict string = %q", got)
	}
}
