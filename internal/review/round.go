package review

import (
	"fmt"
	"time"

	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
)

// transitions lists the states reachable from each non-terminal state.
var transitions = map[enum.RoundState][]enum.RoundState{
	enum.RoundStatePresented:        {enum.RoundStateAwaitingDecision},
	enum.RoundStateAwaitingDecision: {enum.RoundStateApplying, enum.RoundStateNoAction, enum.RoundStateTimedOut},
	enum.RoundStateApplying:         {enum.RoundStateDone},
}

// ActionResult is the outcome of applying an action to one member.
type ActionResult struct {
	Member *member.Flagged
	Action enum.Action
	Err    error
}

// Round is one confirmation round over a single batch.
type Round struct {
	Batch     *member.Batch
	State     enum.RoundState
	Decision  enum.Decision
	MessageID uint64
	Results   []ActionResult
	StartedAt time.Time
	EndedAt   time.Time
}

// NewRound creates a round in the presented state.
func NewRound(batch *member.Batch) *Round {
	return &Round{
		Batch:     batch,
		State:     enum.RoundStatePresented,
		Decision:  enum.DecisionNoAction,
		StartedAt: time.Now(),
	}
}

// Transition moves the round to the next state. Terminal states never transition.
func (r *Round) Transition(to enum.RoundState) error {
	for _, allowed := range transitions[r.State] {
		if allowed == to {
			r.State = to
			if to.IsTerminal() {
				r.EndedAt = time.Now()
			}
			return nil
		}
	}

	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, r.State, to)
}

// Decisions returns the affordances offered for the round.
// Bulk rounds offer no per-member kick.
func (r *Round) Decisions() []enum.Decision {
	if r.Batch.Bulk {
		return []enum.Decision{enum.DecisionBan, enum.DecisionNoAction}
	}
	return []enum.Decision{enum.DecisionBan, enum.DecisionKick, enum.DecisionNoAction}
}

// Failures returns the number of members whose action failed.
func (r *Round) Failures() int {
	count := 0
	for _, result := range r.Results {
		if result.Err != nil {
			count++
		}
	}
	return count
}

// Applied returns the number of members whose action succeeded.
func (r *Round) Applied() int {
	return len(r.Results) - r.Failures()
}
