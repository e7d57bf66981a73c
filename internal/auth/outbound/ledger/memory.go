package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/virasatlabs/virasat/internal/auth/entity"
	"github.com/virasatlabs/virasat/internal/pkg/clock"
)

// Memory is a process-memory ledger driver.
//
// A single mutex guards the map, which serializes same-mobile operations:
// Store is last-write-wins and Claim is an atomic check-then-evict. State
// lives for the server process and is lost on restart.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entity.Challenge
	clk     clock.Clocker
}

// NewMemory returns an empty in-memory ledger.
func NewMemory(clk clock.Clocker) *Memory {
	return &Memory{
		entries: make(map[string]entity.Challenge),
		clk:     clk,
	}
}

// Store saves the challenge, replacing any existing entry for the same mobile.
func (m *Memory) Store(_ context.Context, ch entity.Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[ch.Mobile] = ch

	return nil
}

// Peek returns the live challenge for the mobile without mutating it.
//
// Entries past their window are reported as missing; eviction is left to
// Claim or the sweeper so Peek stays read-only.
func (m *Memory) Peek(_ context.Context, mobile string) (*entity.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.entries[mobile]
	if !ok || ch.ExpiredAt(m.clk.Now()) {
		return nil, entity.ErrNotRequested
	}

	return &ch, nil
}

// Claim looks up the challenge for the mobile, runs the judge, and applies
// the verdict: approved and expired verdicts evict the entry, a mismatch
// retains it. The whole sequence runs under the lock, so a concurrent Store
// or Claim for the same mobile cannot interleave.
func (m *Memory) Claim(_ context.Context, mobile string, judge func(entity.Challenge) entity.Verdict) (entity.Verdict, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, ok := m.entries[mobile]
	if !ok {
		return 0, entity.ErrNotRequested
	}

	verdict := judge(ch)
	if verdict.Evicts() {
		delete(m.entries, mobile)
	}

	return verdict, nil
}

// Sweep periodically removes expired entries until the context is canceled.
// A zero or negative interval disables sweeping and returns immediately.
func (m *Memory) Sweep(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := m.evictExpired()
			if removed > 0 {
				slog.Debug("otp ledger sweep evicted expired challenges", "count", removed)
			}
		}
	}
}

func (m *Memory) evictExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clk.Now()

	var removed int
	for mobile, ch := range m.entries {
		if ch.ExpiredAt(now) {
			delete(m.entries, mobile)
			removed++
		}
	}

	return removed
}
