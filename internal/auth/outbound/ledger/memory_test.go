package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/virasatlabs/virasat/internal/auth/entity"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func challengeAt(mobile, hash string, now time.Time, ttl time.Duration) entity.Challenge {
	return entity.Challenge{
		Mobile:    mobile,
		CodeHash:  hash,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryStoreReplaces(t *testing.T) {
	clk := newFakeClock()
	mem := NewMemory(clk)
	ctx := context.Background()

	if err := mem.Store(ctx, challengeAt("9876543210", "hash-1", clk.Now(), 5*time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := mem.Store(ctx, challengeAt("9876543210", "hash-2", clk.Now(), 5*time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}

	ch, err := mem.Peek(ctx, "9876543210")
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if ch.CodeHash != "hash-2" {
		t.Errorf("peek code hash = %q, want %q", ch.CodeHash, "hash-2")
	}
}

func TestMemoryPeekMissing(t *testing.T) {
	mem := NewMemory(newFakeClock())

	if _, err := mem.Peek(context.Background(), "9876543210"); !errors.Is(err, entity.ErrNotRequested) {
		t.Errorf("peek error = %v, want ErrNotRequested", err)
	}
}

func TestMemoryPeekExpiredWithoutEvicting(t *testing.T) {
	clk := newFakeClock()
	mem := NewMemory(clk)
	ctx := context.Background()

	if err := mem.Store(ctx, challengeAt("9876543210", "hash", clk.Now(), 5*time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}
	clk.Advance(6 * time.Minute)

	if _, err := mem.Peek(ctx, "9876543210"); !errors.Is(err, entity.ErrNotRequested) {
		t.Fatalf("peek error = %v, want ErrNotRequested", err)
	}

	// The expired entry is still claimable, so the judge can report expiry.
	verdict, err := mem.Claim(ctx, "9876543210", func(entity.Challenge) entity.Verdict {
		return entity.VerdictExpired
	})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if verdict != entity.VerdictExpired {
		t.Errorf("verdict = %v, want expired", verdict)
	}

	if _, err := mem.Claim(ctx, "9876543210", func(entity.Challenge) entity.Verdict {
		return entity.VerdictExpired
	}); !errors.Is(err, entity.ErrNotRequested) {
		t.Errorf("second claim error = %v, want ErrNotRequested", err)
	}
}

func TestMemoryClaimMismatchRetains(t *testing.T) {
	clk := newFakeClock()
	mem := NewMemory(clk)
	ctx := context.Background()

	if err := mem.Store(ctx, challengeAt("9876543210", "hash", clk.Now(), 5*time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}

	verdict, err := mem.Claim(ctx, "9876543210", func(entity.Challenge) entity.Verdict {
		return entity.VerdictMismatch
	})
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if verdict != entity.VerdictMismatch {
		t.Fatalf("verdict = %v, want mismatch", verdict)
	}

	verdict, err = mem.Claim(ctx, "9876543210", func(entity.Challenge) entity.Verdict {
		return entity.VerdictApproved
	})
	if err != nil {
		t.Fatalf("claim after mismatch: %v", err)
	}
	if verdict != entity.VerdictApproved {
		t.Errorf("verdict = %v, want approved", verdict)
	}
}

func TestMemoryClaimConcurrentExclusive(t *testing.T) {
	clk := newFakeClock()
	mem := NewMemory(clk)
	ctx := context.Background()

	if err := mem.Store(ctx, challengeAt("9876543210", "hash", clk.Now(), 5*time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}

	const workers = 32

	var wg sync.WaitGroup
	var mu sync.Mutex
	var approved int

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			verdict, err := mem.Claim(ctx, "9876543210", func(entity.Challenge) entity.Verdict {
				return entity.VerdictApproved
			})
			if err != nil {
				return
			}
			if verdict == entity.VerdictApproved {
				mu.Lock()
				approved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if approved != 1 {
		t.Errorf("approved claims = %d, want exactly 1", approved)
	}
}

func TestMemoryEvictExpired(t *testing.T) {
	clk := newFakeClock()
	mem := NewMemory(clk)
	ctx := context.Background()

	if err := mem.Store(ctx, challengeAt("9876543210", "old", clk.Now(), time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}
	clk.Advance(2 * time.Minute)
	if err := mem.Store(ctx, challengeAt("9123456789", "live", clk.Now(), 5*time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}

	if removed := mem.evictExpired(); removed != 1 {
		t.Errorf("evicted = %d, want 1", removed)
	}

	if _, err := mem.Peek(ctx, "9123456789"); err != nil {
		t.Errorf("live entry evicted: %v", err)
	}
}
