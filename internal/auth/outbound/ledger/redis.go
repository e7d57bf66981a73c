package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
	"github.com/virasatlabs/virasat/internal/auth/entity"
	"github.com/virasatlabs/virasat/internal/pkg/clock"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	redisKeyPrefix = "auth:otp:"

	claimMaxRetries   = 5
	claimRetryBackoff = 5 * time.Millisecond
)

// Redis is a ledger driver backed by a shared Redis cache with native per-key
// expiry, so challenges survive process restarts and expire without sweeping.
type Redis struct {
	client *redis.Client
	clk    clock.Clocker
	ins    instrument.Instrumentation
}

// NewRedis returns a Redis-backed ledger.
func NewRedis(client *redis.Client, clk clock.Clocker, ins instrument.Instrumentation) *Redis {
	return &Redis{client: client, clk: clk, ins: ins}
}

func (r *Redis) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("auth.outbound.ledger").Start(ctx, name)
}

func (r *Redis) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, entity.ErrNotRequested) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Store saves the challenge under its mobile key with a TTL matching the
// challenge window. SET replaces any existing value, so last write wins.
func (r *Redis) Store(ctx context.Context, ch entity.Challenge) (err error) {
	ctx, span := r.startSpan(ctx, "Store")
	defer func() { r.endSpan(span, err) }()

	raw, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	ttl := ch.ExpiresAt.Sub(r.clk.Now())
	if ttl <= 0 {
		return goerror.NewServerMsg(nil, "challenge already expired at store time")
	}

	return r.client.Set(ctx, redisKeyPrefix+ch.Mobile, raw, ttl).Err()
}

// Peek returns the live challenge for the mobile without mutating it.
func (r *Redis) Peek(ctx context.Context, mobile string) (ch *entity.Challenge, err error) {
	ctx, span := r.startSpan(ctx, "Peek")
	defer func() { r.endSpan(span, err) }()

	raw, err := r.client.Get(ctx, redisKeyPrefix+mobile).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, entity.ErrNotRequested
	}
	if err != nil {
		return nil, err
	}

	var out entity.Challenge
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Claim runs the judge against the stored challenge and applies the verdict
// atomically. The code comparison cannot run inside a Redis script, so the
// check-then-evict uses WATCH-based optimistic locking: if another operation
// touches the key between the read and the eviction, the transaction fails
// and the whole claim is retried with backoff.
func (r *Redis) Claim(ctx context.Context, mobile string, judge func(entity.Challenge) entity.Verdict) (verdict entity.Verdict, err error) {
	ctx, span := r.startSpan(ctx, "Claim")
	defer func() { r.endSpan(span, err) }()

	key := redisKeyPrefix + mobile

	backoff := retry.WithMaxRetries(claimMaxRetries, retry.NewFibonacci(claimRetryBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		errWatch := r.client.Watch(ctx, func(tx *redis.Tx) error {
			raw, errGet := tx.Get(ctx, key).Bytes()
			if errors.Is(errGet, redis.Nil) {
				return entity.ErrNotRequested
			}
			if errGet != nil {
				return errGet
			}

			var ch entity.Challenge
			if errJSON := json.Unmarshal(raw, &ch); errJSON != nil {
				return errJSON
			}

			verdict = judge(ch)
			if !verdict.Evicts() {
				return nil
			}

			_, errPipe := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			return errPipe
		}, key)

		if errors.Is(errWatch, redis.TxFailedErr) {
			return retry.RetryableError(errWatch)
		}
		return errWatch
	})
	if err != nil {
		return 0, err
	}

	return verdict, nil
}
