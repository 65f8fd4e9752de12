package review

import (
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
)

// Plan splits flagged members into the ordered batches of a session.
//
// Single mode yields one member per batch. Batch mode yields bulk batches of at
// most batchSize members. Cohort mode yields one bulk batch per cohort regardless
// of its size, followed by the members without a cohort in chunks of batchSize.
func Plan(flagged []*member.Flagged, mode enum.ReviewMode, batchSize int) []*member.Batch {
	if batchSize < 1 {
		batchSize = 1
	}

	var groups [][]*member.Flagged
	bulk := true

	switch mode {
	case enum.ReviewModeSingle:
		bulk = false
		groups = chunk(flagged, 1)
	case enum.ReviewModeBatch:
		groups = chunk(flagged, batchSize)
	case enum.ReviewModeCohort:
		groups = byCohort(flagged, batchSize)
	default:
		bulk = false
		groups = chunk(flagged, 1)
	}

	batches := make([]*member.Batch, 0, len(groups))
	for i, group := range groups {
		batches = append(batches, &member.Batch{
			Index:   i,
			Members: group,
			Bulk:    bulk,
		})
	}

	return batches
}

func chunk(flagged []*member.Flagged, size int) [][]*member.Flagged {
	groups := make([][]*member.Flagged, 0, (len(flagged)+size-1)/size)
	for start := 0; start < len(flagged); start += size {
		end := min(start+size, len(flagged))
		groups = append(groups, flagged[start:end:end])
	}
	return groups
}

// byCohort keeps cohorts in order of first appearance.
func byCohort(flagged []*member.Flagged, batchSize int) [][]*member.Flagged {
	var order []string
	var loners []*member.Flagged
	var groups [][]*member.Flagged
	cohorts := make(map[string][]*member.Flagged)

	for _, f := range flagged {
		if f.CohortKey == "" {
			loners = append(loners, f)
			continue
		}
		if _, ok := cohorts[f.CohortKey]; !ok {
			order = append(order, f.CohortKey)
		}
		cohorts[f.CohortKey] = append(cohorts[f.CohortKey], f)
	}

	for _, key := range order {
		groups = append(groups, cohorts[key])
	}

	return append(groups, chunk(loners, batchSize)...)
}
