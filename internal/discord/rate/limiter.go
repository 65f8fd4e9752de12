package rate

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/robalyx/airlock/pkg/utils"
)

// Limiter spaces Discord API requests by a base interval with random jitter.
// Concurrent callers are given consecutive slots.
type Limiter struct {
	mu        sync.Mutex
	next      time.Time
	interval  time.Duration
	maxJitter time.Duration
}

// New creates a rate limiter with base interval and jitter.
// For example, interval=1s and jitter=200ms spaces requests 800ms-1200ms apart.
// A zero interval disables pacing.
func New(interval, jitter time.Duration) *Limiter {
	return &Limiter{
		interval:  interval,
		maxJitter: min(jitter, interval),
	}
}

// WaitForNextSlot blocks until the caller's slot is reached.
func (l *Limiter) WaitForNextSlot(ctx context.Context) error {
	if l == nil || l.interval <= 0 {
		return ctx.Err()
	}

	l.mu.Lock()
	now := time.Now()
	slot := l.next
	if slot.Before(now) {
		slot = now
	}
	l.next = slot.Add(l.interval + l.jitter())
	l.mu.Unlock()

	if utils.ContextSleep(ctx, time.Until(slot)) == utils.SleepCancelled {
		return ctx.Err()
	}
	return nil
}

func (l *Limiter) jitter() time.Duration {
	if l.maxJitter <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(l.maxJitter)*2)) - l.maxJitter
}
