package member

import (
	"strings"

	"github.com/robalyx/airlock/internal/member/enum"
)

// Reason is a single human-readable cause for flagging a member.
type Reason struct {
	Type    enum.SignalType `json:"type"`
	Message string          `json:"message"`
}

// Reasons is an ordered list of reasons with at most one entry per signal type.
type Reasons []Reason

// Add appends a reason unless one of the same type is already present.
// Returns false when the reason was ignored as a duplicate.
func (r *Reasons) Add(signal enum.SignalType, message string) bool {
	if r.Has(signal) {
		return false
	}

	*r = append(*r, Reason{Type: signal, Message: normalizeMessage(message)})

	return true
}

// Has reports whether a reason of the given type exists.
func (r Reasons) Has(signal enum.SignalType) bool {
	for _, reason := range r {
		if reason.Type == signal {
			return true
		}
	}

	return false
}

// Get returns the message for the given type.
func (r Reasons) Get(signal enum.SignalType) (string, bool) {
	for _, reason := range r {
		if reason.Type == signal {
			return reason.Message, true
		}
	}

	return "", false
}

// Messages returns all reason messages in insertion order.
func (r Reasons) Messages() []string {
	messages := make([]string, 0, len(r))
	for _, reason := range r {
		messages = append(messages, reason.Message)
	}

	return messages
}

// Types returns all reason types in insertion order.
func (r Reasons) Types() []string {
	types := make([]string, 0, len(r))
	for _, reason := range r {
		types = append(types, reason.Type.String())
	}

	return types
}

// String joins all messages into one line.
func (r Reasons) String() string {
	return strings.Join(r.Messages(), "; ")
}

// normalizeMessage collapses a multi-line message into a single trimmed line.
func normalizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")

	return strings.Join(strings.Fields(msg), " ")
}
