package review

import "time"

// Config holds the confirmation workflow settings.
type Config struct {
	// SingleTimeout bounds the wait for a decision on a single-member round.
	SingleTimeout time.Duration
	// BulkTimeout bounds the wait for a decision on a bulk round.
	BulkTimeout time.Duration
	// BatchSize is the maximum number of members in a fixed-size batch.
	BatchSize int
	// ApplyConcurrency is the number of ban or kick calls issued at once.
	ApplyConcurrency int
	// SessionTTL is how long a review lock is held before it expires on its own.
	SessionTTL time.Duration
}

// DefaultConfig returns the default workflow settings.
func DefaultConfig() Config {
	return Config{
		SingleTimeout:    60 * time.Second,
		BulkTimeout:      300 * time.Second,
		BatchSize:        10,
		ApplyConcurrency: 1,
		SessionTTL:       2 * time.Hour,
	}
}

// timeoutFor returns the decision bound for a batch.
func (c Config) timeoutFor(bulk bool) time.Duration {
	if bulk {
		return c.BulkTimeout
	}
	return c.SingleTimeout
}
