package sms

import (
	"context"
	"log/slog"
)

// Log is a Sender that writes messages to the application log instead of
// delivering them. It is used when no SMS provider is configured, so local
// development keeps working without Twilio credentials.
type Log struct{}

// NewLog returns a log-only SMS sender.
func NewLog() *Log {
	return &Log{}
}

// Send logs the message server-side. The body is not masked here because it
// never leaves the process.
func (l *Log) Send(ctx context.Context, to, body string) error {
	slog.InfoContext(ctx, "sms not sent, provider not configured", "to", to, "body", body)

	return nil
}

// Kind reports the provider implementation.
func (l *Log) Kind() Kind {
	return KindLog
}
