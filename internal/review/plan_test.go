package review_test

import (
	"testing"

	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/robalyx/airlock/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchIDs(batches []*member.Batch) [][]uint64 {
	result := make([][]uint64, 0, len(batches))
	for _, batch := range batches {
		ids := make([]uint64, 0, batch.Size())
		for _, f := range batch.Members {
			ids = append(ids, f.Record.ID)
		}
		result = append(result, ids)
	}
	return result
}

func TestPlan(t *testing.T) {
	t.Parallel()

	members := []*member.Flagged{
		flagged(1, "a"), flagged(2, "a"), flagged(3, "a"), flagged(4, "a"),
		flagged(5, "b"), flagged(6, ""), flagged(7, "b"), flagged(8, ""),
	}

	tests := []struct {
		name     string
		mode     enum.ReviewMode
		size     int
		wantIDs  [][]uint64
		wantBulk bool
	}{
		{
			name:     "single",
			mode:     enum.ReviewModeSingle,
			size:     3,
			wantIDs:  [][]uint64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}},
			wantBulk: false,
		},
		{
			name:     "fixed batches",
			mode:     enum.ReviewModeBatch,
			size:     3,
			wantIDs:  [][]uint64{{1, 2, 3}, {4, 5, 6}, {7, 8}},
			wantBulk: true,
		},
		{
			name:     "whole cohorts exceed batch size",
			mode:     enum.ReviewModeCohort,
			size:     3,
			wantIDs:  [][]uint64{{1, 2, 3, 4}, {5, 7}, {6, 8}},
			wantBulk: true,
		},
		{
			name:     "invalid batch size",
			mode:     enum.ReviewModeBatch,
			size:     0,
			wantIDs:  [][]uint64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}},
			wantBulk: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			batches := review.Plan(members, tt.mode, tt.size)
			assert.Equal(t, tt.wantIDs, batchIDs(batches))
			for i, batch := range batches {
				assert.Equal(t, i, batch.Index)
				assert.Equal(t, tt.wantBulk, batch.Bulk)
			}
		})
	}
}

func TestPlan_Empty(t *testing.T) {
	t.Parallel()

	for _, mode := range enum.ReviewModeValues() {
		require.Empty(t, review.Plan(nil, mode, 5))
	}
}
