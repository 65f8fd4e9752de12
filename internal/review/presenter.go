package review

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
)

const (
	colorSingle = 0xED4245
	colorBulk   = 0xFEE75C
	dateLayout  = "2006-01-02 15:04 MST"
)

// presentRound renders the confirmation message for a round.
func presentRound(round *Round, total int, timeout time.Duration) *Message {
	batch := round.Batch
	msg := &Message{
		Footer: fmt.Sprintf("Round %d of %d | Expires in %s", batch.Index+1, total, timeout),
		Color:  colorSingle,
	}

	var affordances []string
	for _, decision := range round.Decisions() {
		emoji, _ := EmojiForDecision(decision)
		affordances = append(affordances, fmt.Sprintf("%s %s", emoji, decisionLabel(decision)))
	}

	if batch.Bulk {
		msg.Color = colorBulk
		msg.Title = fmt.Sprintf("Suspicious batch of %d members", batch.Size())
		if reason := batch.Members[0].CohortReason(); reason != "" && sharesCohort(batch) {
			msg.Title = fmt.Sprintf("Suspicious cohort of %d members", batch.Size())
			msg.Description = reason + "\n\n"
		}
	} else {
		msg.Title = "Suspicious member"
	}
	msg.Description += "React to decide: " + strings.Join(affordances, " | ")

	for _, f := range batch.Members {
		msg.Entries = append(msg.Entries, Entry{
			Name:  fmt.Sprintf("%s (%d)", f.Record.Name(), f.Record.ID),
			Value: describeMember(f),
		})
	}

	return msg
}

func describeMember(f *member.Flagged) string {
	var b strings.Builder

	b.WriteString(mention(f.Record))
	b.WriteString("\nCreated: ")
	b.WriteString(f.Record.CreatedAt.UTC().Format(dateLayout))
	b.WriteString("\nJoined: ")
	if f.Record.HasJoinTime() {
		b.WriteString(f.Record.JoinedAt.UTC().Format(dateLayout))
	} else {
		b.WriteString("unknown")
	}

	for _, msg := range f.Reasons.Messages() {
		b.WriteString("\n- ")
		b.WriteString(msg)
	}

	return b.String()
}

func sharesCohort(batch *member.Batch) bool {
	key := batch.Members[0].CohortKey
	for _, f := range batch.Members {
		if f.CohortKey != key {
			return false
		}
	}
	return key != ""
}

func decisionLabel(decision enum.Decision) string {
	switch decision {
	case enum.DecisionBan:
		return "Ban"
	case enum.DecisionKick:
		return "Kick"
	case enum.DecisionNoAction:
		return "No action"
	case enum.DecisionTimeout:
		return "Timed out"
	default:
		return decision.String()
	}
}

func mention(record *member.Record) string {
	if record.Mention != "" {
		return record.Mention
	}
	return record.Name()
}

func memberList(batch *member.Batch) string {
	names := make([]string, 0, batch.Size())
	for _, f := range batch.Members {
		names = append(names, mention(f.Record))
	}
	return strings.Join(names, ", ")
}

// timeoutNotice reports an expired round, including how many queued members were dropped.
func timeoutNotice(round *Round, timeout time.Duration, remaining int) string {
	text := fmt.Sprintf("No decision within %s. No action taken for %s.", timeout, memberList(round.Batch))
	if remaining > 0 {
		text += fmt.Sprintf(" Stopping review; %d queued members were not presented.", remaining)
	}
	return text
}

func noActionNotice(round *Round) string {
	return "No action taken for " + memberList(round.Batch) + "."
}

// resultNotice lists every member's outcome, with failures reported individually.
func resultNotice(round *Round) string {
	lines := make([]string, 0, len(round.Results))
	for _, result := range round.Results {
		target := mention(result.Member.Record)
		verb := result.Action.Verb()

		switch {
		case result.Err == nil:
			lines = append(lines, fmt.Sprintf("%s %s.", capitalize(result.Action.PastTense()), target))
		case errors.Is(result.Err, ErrPermissionDenied):
			lines = append(lines, fmt.Sprintf("Could not %s %s: missing permissions.", verb, target))
		default:
			lines = append(lines, fmt.Sprintf("Failed to %s %s: %v", verb, target, result.Err))
		}
	}
	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
