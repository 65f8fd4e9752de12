package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"
	"github.com/robalyx/airlock/internal/review"
	"go.uber.org/zap"
)

const lockKeyPrefix = "airlock:review:"

// releaseScript deletes the lock only while it is still owned by the caller.
var releaseScript = rueidis.NewLuaScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var _ review.Locker = (*SessionLocker)(nil)

// SessionLocker holds one review lock per guild in Redis.
type SessionLocker struct {
	client rueidis.Client
	logger *zap.Logger
}

// NewSessionLocker creates a locker on the given client.
func NewSessionLocker(client rueidis.Client, logger *zap.Logger) *SessionLocker {
	return &SessionLocker{
		client: client,
		logger: logger.Named("session_locker"),
	}
}

// Acquire implements review.Locker.
func (l *SessionLocker) Acquire(ctx context.Context, guildID uint64, sessionID string, ttl time.Duration) (bool, error) {
	err := l.client.Do(ctx, l.client.B().Set().
		Key(lockKey(guildID)).
		Value(sessionID).
		Nx().
		PxMilliseconds(max(ttl.Milliseconds(), 1)).
		Build()).Error()
	if rueidis.IsRedisNil(err) {
		l.logger.Debug("Review lock held by another session", zap.Uint64("guildID", guildID))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to acquire review lock: %w", err)
	}

	return true, nil
}

// Release implements review.Locker.
func (l *SessionLocker) Release(ctx context.Context, guildID uint64, sessionID string) error {
	err := releaseScript.Exec(ctx, l.client, []string{lockKey(guildID)}, []string{sessionID}).Error()
	if err != nil && !rueidis.IsRedisNil(err) {
		return fmt.Errorf("failed to release review lock: %w", err)
	}
	return nil
}

func lockKey(guildID uint64) string {
	return lockKeyPrefix + strconv.FormatUint(guildID, 10)
}
