package review

import (
	"context"
	"time"

	"github.com/robalyx/airlock/internal/member/enum"
)

// Matcher maps a signal to a decision. Signals it rejects are ignored.
type Matcher func(Signal) (enum.Decision, bool)

// AwaitDecision blocks until a signal accepted by the matcher arrives or the
// timeout expires. The deadline is fixed when the wait starts, so rejected
// signals never extend it. Expiry is reported as DecisionTimeout with a nil error.
func AwaitDecision(ctx context.Context, signals <-chan Signal, match Matcher, timeout time.Duration) (enum.Decision, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return enum.DecisionTimeout, ctx.Err()
		case <-timer.C:
			return enum.DecisionTimeout, nil
		case signal, ok := <-signals:
			if !ok {
				return enum.DecisionTimeout, ErrSubscriptionClosed
			}
			if decision, accepted := match(signal); accepted {
				return decision, nil
			}
		}
	}
}

// NewMatcher accepts only signals from the moderator on the presented message
// whose emoji maps to one of the offered decisions.
func NewMatcher(moderatorID, messageID uint64, offered []enum.Decision) Matcher {
	return func(signal Signal) (enum.Decision, bool) {
		if signal.UserID != moderatorID || signal.MessageID != messageID {
			return enum.DecisionNoAction, false
		}

		decision, ok := DecisionForEmoji(signal.Emoji)
		if !ok {
			return enum.DecisionNoAction, false
		}

		for _, allowed := range offered {
			if allowed == decision {
				return decision, true
			}
		}

		return enum.DecisionNoAction, false
	}
}
