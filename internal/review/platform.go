package review

import (
	"context"
	"errors"
	"time"

	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
)

var (
	// ErrPermissionDenied is returned by an Executor when the platform refuses the action.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrSessionActive is returned when a review is already running for the community.
	ErrSessionActive = errors.New("a review session is already running for this server")
	// ErrSubscriptionClosed is returned when the decision signal stream ends early.
	ErrSubscriptionClosed = errors.New("decision subscription closed")
	// ErrInvalidTransition is returned when a round is moved to a state it cannot reach.
	ErrInvalidTransition = errors.New("invalid round transition")
)

// Roster reads the current member list of a community.
type Roster interface {
	// ListMembers returns the full current roster.
	ListMembers(ctx context.Context, guildID uint64) ([]*member.Record, error)
}

// Signal is a decision gesture made by a user on a presented message.
type Signal struct {
	UserID    uint64
	MessageID uint64
	Emoji     string
}

// Entry is one labelled block in a presented message.
type Entry struct {
	Name  string
	Value string
}

// Message is a platform-neutral rendering of a confirmation round.
type Message struct {
	Title       string
	Description string
	Entries     []Entry
	Footer      string
	Color       int
}

// Surface is the moderator-facing channel a session talks to.
type Surface interface {
	// SendMessage posts a message and returns its identity.
	SendMessage(ctx context.Context, channelID uint64, msg *Message) (uint64, error)
	// AddReaction attaches a decision affordance to a message.
	AddReaction(ctx context.Context, channelID, messageID uint64, emoji string) error
	// Subscribe streams decision signals made in the channel until the returned stop function is called.
	Subscribe(ctx context.Context, channelID uint64) (<-chan Signal, func())
	// Notify posts a plain notice.
	Notify(ctx context.Context, channelID uint64, text string) error
}

// Executor issues removals on the platform. Each call is independent.
type Executor interface {
	ApplyAction(ctx context.Context, guildID uint64, action enum.Action, record *member.Record, reason string) error
}

// Locker guarantees at most one review session per community.
type Locker interface {
	// Acquire takes the lock for the session. It returns false when another session holds it.
	Acquire(ctx context.Context, guildID uint64, sessionID string, ttl time.Duration) (bool, error)
	// Release frees the lock if the session still owns it.
	Release(ctx context.Context, guildID uint64, sessionID string) error
}

// AuditWriter persists the flagged members of a scan as a side output.
type AuditWriter interface {
	Write(ctx context.Context, guildID uint64, result *checker.ScanResult) ([]string, error)
}
