package enum

// RoundState tracks one confirmation round.
//
//go:generate go tool enumer -type=RoundState -trimprefix=RoundState -transform=snake
type RoundState int

const (
	// RoundStatePresented means the batch was shown to the moderator.
	RoundStatePresented RoundState = iota
	// RoundStateAwaitingDecision means the round is blocked on the moderator.
	RoundStateAwaitingDecision
	// RoundStateApplying means the chosen action is being issued.
	RoundStateApplying
	// RoundStateDone means the action was issued to every member.
	RoundStateDone
	// RoundStateNoAction means the moderator dismissed the batch.
	RoundStateNoAction
	// RoundStateTimedOut means no decision arrived in time.
	RoundStateTimedOut
)

// IsTerminal reports whether the state never transitions further.
func (s RoundState) IsTerminal() bool {
	return s == RoundStateDone || s == RoundStateNoAction || s == RoundStateTimedOut
}

// Grouping selects the cohort detection strategy used by a scan.
//
//go:generate go tool enumer -type=Grouping -trimprefix=Grouping -transform=snake
type Grouping int

const (
	// GroupingNone skips cohort detection.
	GroupingNone Grouping = iota
	// GroupingExactPair groups members by their (creation day, join day) pair.
	GroupingExactPair
	// GroupingSlidingWindow groups members by creation and join time proximity.
	GroupingSlidingWindow
)

// ReviewMode selects how flagged members are batched for confirmation.
//
//go:generate go tool enumer -type=ReviewMode -trimprefix=ReviewMode -transform=snake
type ReviewMode int

const (
	// ReviewModeSingle presents one member per round.
	ReviewModeSingle ReviewMode = iota
	// ReviewModeBatch presents fixed-size batches.
	ReviewModeBatch
	// ReviewModeCohort presents one whole cohort per round.
	ReviewModeCohort
)
