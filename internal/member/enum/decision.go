package enum

// Decision is the terminal result of one confirmation round.
//
//go:generate go tool enumer -type=Decision -trimprefix=Decision -transform=snake
type Decision int

const (
	// DecisionNoAction dismisses the presented members.
	DecisionNoAction Decision = iota
	// DecisionBan bans every presented member.
	DecisionBan
	// DecisionKick kicks the presented member.
	DecisionKick
	// DecisionTimeout means no valid decision arrived in time.
	DecisionTimeout
)

// Action returns the platform action a decision maps to.
// Only ban and kick decisions carry an action.
func (d Decision) Action() (Action, bool) {
	switch d {
	case DecisionBan:
		return ActionBan, true
	case DecisionKick:
		return ActionKick, true
	case DecisionNoAction, DecisionTimeout:
		return 0, false
	default:
		return 0, false
	}
}

// Action is a membership removal issued to the platform.
//
//go:generate go tool enumer -type=Action -trimprefix=Action -transform=snake
type Action int

const (
	// ActionBan bans the member from the community.
	ActionBan Action = iota
	// ActionKick removes the member without a ban.
	ActionKick
)

// Verb returns the imperative verb used in moderator notices.
func (a Action) Verb() string {
	if a == ActionKick {
		return "kick"
	}
	return "ban"
}

// PastTense returns the verb used in moderator notices.
func (a Action) PastTense() string {
	if a == ActionKick {
		return "kicked"
	}
	return "banned"
}
