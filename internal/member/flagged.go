package member

import (
	"errors"
	"time"

	"github.com/robalyx/airlock/internal/member/enum"
)

// ErrNoReasons is returned when a flagged member would be built without a cause.
var ErrNoReasons = errors.New("flagged member requires at least one reason")

// Flagged wraps a member for whom at least one suspicion signal fired.
type Flagged struct {
	Record    *Record `json:"record"`
	Reasons   Reasons `json:"reasons"`
	CohortKey string  `json:"cohortKey,omitempty"`
}

// NewFlagged builds a flagged member. The reasons list must be non-empty.
func NewFlagged(record *Record, reasons Reasons, cohortKey string) (*Flagged, error) {
	if len(reasons) == 0 {
		return nil, ErrNoReasons
	}

	return &Flagged{
		Record:    record,
		Reasons:   reasons,
		CohortKey: cohortKey,
	}, nil
}

// CohortReason returns the cohort reason message, or an empty string.
func (f *Flagged) CohortReason() string {
	msg, _ := f.Reasons.Get(enum.SignalTypeDuplicateCohort)
	return msg
}

// Cohort is a set of members sharing near-identical creation and join times.
type Cohort struct {
	Key          string        `json:"key"`
	Kind         enum.Grouping `json:"kind"`
	Members      []*Record     `json:"members"`
	CreatedStart time.Time     `json:"createdStart"`
	JoinedStart  time.Time     `json:"joinedStart"`
}

// Size returns the number of members in the cohort.
func (c *Cohort) Size() int {
	return len(c.Members)
}

// Batch is an ordered group of flagged members reviewed in one confirmation round.
type Batch struct {
	Index   int        `json:"index"`
	Members []*Flagged `json:"members"`
	Bulk    bool       `json:"bulk"`
}

// Size returns the number of members in the batch.
func (b *Batch) Size() int {
	return len(b.Members)
}
