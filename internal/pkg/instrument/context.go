package instrument

import "context"

type correlationIDKey struct{}

// SetCorrelationID stores the correlation ID on the context so log records
// and outgoing messages can carry it across process boundaries.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cID)
}

// GetCorrelationID returns the correlation ID stored on the context, or the
// empty string when none was set.
func GetCorrelationID(ctx context.Context) string {
	cID, _ := ctx.Value(correlationIDKey{}).(string)

	return cID
}
