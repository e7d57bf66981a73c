package sms

import "context"

// Unconfigured is a Sender that refuses every send. It is installed when
// provider credentials are present but incomplete, so OTP delivery surfaces
// an error to the caller instead of silently switching to mock mode.
type Unconfigured struct {
	err error
}

// NewUnconfigured returns a sender that fails every Send with err.
func NewUnconfigured(err error) *Unconfigured {
	if err == nil {
		err = ErrIncompleteCredentials
	}

	return &Unconfigured{err: err}
}

// Send always fails with the configuration error.
func (u *Unconfigured) Send(_ context.Context, _, _ string) error {
	return u.err
}

// Kind reports the provider implementation.
func (u *Unconfigured) Kind() Kind {
	return KindUnconfigured
}
