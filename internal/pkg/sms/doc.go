// Package sms defines the contracts for sending SMS messages.
//
// The main purpose is to keep the rest of the application independent from a
// specific SMS provider. Use cases work with the Sender interface; the
// concrete delivery mechanism (Twilio, log-only fallback) is implemented
// elsewhere in this package.
package sms
