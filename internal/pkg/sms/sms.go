package sms

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned when no provider credentials are present
	// at all.
	ErrNotConfigured = errors.New("sms provider is not configured")

	// ErrIncompleteCredentials is returned when some but not all provider
	// credentials are present. This is treated as operator error rather than
	// an intentional mock setup.
	ErrIncompleteCredentials = errors.New("sms provider credentials are incomplete")

	// ErrDeliveryFailed is returned when the provider refused or failed to
	// deliver the message.
	ErrDeliveryFailed = errors.New("sms delivery failed")
)

// Kind identifies the concrete sender implementation.
type Kind string

const (
	// KindTwilio delivers through the Twilio Messages API.
	KindTwilio Kind = "twilio"
	// KindLog writes messages to the application log instead of sending.
	KindLog Kind = "log"
	// KindUnconfigured refuses every send; installed when provider
	// credentials are present but incomplete.
	KindUnconfigured Kind = "unconfigured"
)

// Sender abstracts an SMS provider.
type Sender interface {
	// Send dispatches a text message to the given E.164 destination.
	Send(ctx context.Context, to, body string) error
	// Kind reports which provider implementation is in use.
	Kind() Kind
}
