package instrument

import (
	"context"
	"testing"
)

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := SetCorrelationID(context.Background(), "cid-123")

	if got := GetCorrelationID(ctx); got != "cid-123" {
		t.Errorf("GetCorrelationID() = %q, want cid-123", got)
	}
}

func TestCorrelationIDMissing(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Errorf("GetCorrelationID() = %q, want empty on a bare context", got)
	}
}

func TestCorrelationIDOverwrite(t *testing.T) {
	ctx := SetCorrelationID(context.Background(), "first")
	ctx = SetCorrelationID(ctx, "second")

	if got := GetCorrelationID(ctx); got != "second" {
		t.Errorf("GetCorrelationID() = %q, want second", got)
	}
}
