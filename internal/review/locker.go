package review

import (
	"context"
	"sync"
	"time"
)

// LocalLocker is an in-process Locker used when Redis is disabled.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[uint64]localLock
	now   func() time.Time
}

type localLock struct {
	owner   string
	expires time.Time
}

// NewLocalLocker creates an empty in-process locker.
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		locks: make(map[uint64]localLock),
		now:   time.Now,
	}
}

// Acquire implements Locker.
func (l *LocalLocker) Acquire(_ context.Context, guildID uint64, sessionID string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if held, ok := l.locks[guildID]; ok && now.Before(held.expires) {
		return false, nil
	}

	l.locks[guildID] = localLock{owner: sessionID, expires: now.Add(ttl)}
	return true, nil
}

// Release implements Locker.
func (l *LocalLocker) Release(_ context.Context, guildID uint64, sessionID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[guildID]; ok && held.owner == sessionID {
		delete(l.locks, guildID)
	}
	return nil
}
