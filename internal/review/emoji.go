package review

import "github.com/robalyx/airlock/internal/member/enum"

// Reaction emojis offered on confirmation messages.
const (
	EmojiBan      = "🔨"
	EmojiKick     = "👢"
	EmojiNoAction = "🚫"
)

// EmojiForDecision returns the reaction that selects a decision.
func EmojiForDecision(decision enum.Decision) (string, bool) {
	switch decision {
	case enum.DecisionBan:
		return EmojiBan, true
	case enum.DecisionKick:
		return EmojiKick, true
	case enum.DecisionNoAction:
		return EmojiNoAction, true
	case enum.DecisionTimeout:
		return "", false
	default:
		return "", false
	}
}

// DecisionForEmoji maps a reaction back to its decision.
func DecisionForEmoji(emoji string) (enum.Decision, bool) {
	switch emoji {
	case EmojiBan:
		return enum.DecisionBan, true
	case EmojiKick:
		return enum.DecisionKick, true
	case EmojiNoAction:
		return enum.DecisionNoAction, true
	default:
		return enum.DecisionNoAction, false
	}
}
