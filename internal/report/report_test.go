package report_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/robalyx/airlock/internal/report"
	"github.com/robalyx/airlock/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"
)

var refNow = time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time {
	return &t
}

// testRoster returns six members of one exact-pair cohort, one established
// member, one bot and one unreadable record.
func testRoster() []*member.Record {
	roster := make([]*member.Record, 0, 9)
	for i := range 6 {
		roster = append(roster, &member.Record{
			ID:         uint64(100 + i),
			Username:   "wave",
			AvatarHash: "a1",
			CreatedAt:  time.Date(2024, 3, 1, i, 0, 0, 0, time.UTC),
			JoinedAt:   ptr(time.Date(2024, 5, 1, i, 0, 0, 0, time.UTC)),
		})
	}

	return append(roster,
		&member.Record{
			ID:         200,
			Username:   "regular",
			AvatarHash: "b2",
			CreatedAt:  time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
			JoinedAt:   ptr(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
		&member.Record{ID: 300, Username: "helper", Bot: true},
		&member.Record{ID: 0},
	)
}

func classify(t *testing.T, roster []*member.Record, grouping enum.Grouping) *checker.ScanResult {
	t.Helper()
	classifier := checker.NewClassifier(checker.DefaultConfig(), nil, zaptest.NewLogger(t))
	return classifier.Classify(roster, refNow, checker.ScanOptions{Grouping: grouping})
}

func TestSummary(t *testing.T) {
	t.Parallel()

	summarizer := report.NewSummarizer(language.English)
	scan := classify(t, testRoster(), enum.GroupingExactPair)
	require.Len(t, scan.Flagged, 6)

	t.Run("scan only", func(t *testing.T) {
		t.Parallel()

		got := summarizer.Summary(scan, nil, nil)
		assert.Equal(t,
			"Scanned 9 members (1 bot ignored, 1 unreadable record skipped).\n"+
				"Flagged 6 members.\n"+
				"Exact Pair cohorts: 1 covering 6 members.",
			got)
	})

	t.Run("with review", func(t *testing.T) {
		t.Parallel()

		banned := &review.Round{
			Batch: &member.Batch{Members: scan.Flagged[:2], Bulk: true},
			State: enum.RoundStateDone,
			Results: []review.ActionResult{
				{Member: scan.Flagged[0], Action: enum.ActionBan},
				{Member: scan.Flagged[1], Action: enum.ActionBan, Err: review.ErrPermissionDenied},
			},
		}
		dismissed := &review.Round{
			Batch: &member.Batch{Members: scan.Flagged[2:5], Bulk: true},
			State: enum.RoundStateNoAction,
		}
		session := &review.SessionResult{Rounds: []*review.Round{banned, dismissed}, Aborted: true, Pending: 1}

		got := summarizer.Summary(scan, session, []string{"flagged.json"})
		assert.Contains(t, got, "Review: 1 banned, 3 dismissed, 1 failed, 1 not presented.")
		assert.Contains(t, got, "Review stopped after a decision timed out.")
		assert.Contains(t, got, "Audit trail written to 1 file.")
	})
}

func TestSummaryNoFlags(t *testing.T) {
	t.Parallel()

	summarizer := report.NewSummarizer(language.English)
	scan := classify(t, testRoster()[6:7], enum.GroupingNone)

	assert.Equal(t, "Scanned 1 member.\n"+report.NoFlagsMessage, summarizer.Summary(scan, nil, nil))
}

func TestSummaryNumberFormatting(t *testing.T) {
	t.Parallel()

	summarizer := report.NewSummarizer(language.English)
	got := summarizer.Summary(&checker.ScanResult{Total: 12345}, nil, nil)

	assert.Contains(t, got, "Scanned 12,345 members.")
}

func TestTallyLine(t *testing.T) {
	t.Parallel()

	summarizer := report.NewSummarizer(language.English)

	assert.Equal(t, "Review: nothing decided.", summarizer.TallyLine(review.Tally{}))
	assert.Equal(t, "Review: 2 kicked, 1 timed out.", summarizer.TallyLine(review.Tally{Kicked: 2, TimedOut: 1}))
}

func TestGroupingLabel(t *testing.T) {
	t.Parallel()

	summarizer := report.NewSummarizer(language.English)

	assert.Equal(t, "Exact Pair", summarizer.GroupingLabel(enum.GroupingExactPair))
	assert.Equal(t, "Sliding Window", summarizer.GroupingLabel(enum.GroupingSlidingWindow))
}

func TestRosterChart(t *testing.T) {
	t.Parallel()

	roster := testRoster()
	scan := classify(t, roster, enum.GroupingExactPair)

	buf, err := report.NewRosterChart(roster, scan.Flagged).Build()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRosterChartSinglePoint(t *testing.T) {
	t.Parallel()

	buf, err := report.NewRosterChart(testRoster()[6:7], nil).Build()
	require.NoError(t, err)
	assert.Positive(t, buf.Len())
}

func TestRosterChartNoData(t *testing.T) {
	t.Parallel()

	roster := []*member.Record{{ID: 1, CreatedAt: refNow}, {ID: 0}}

	_, err := report.NewRosterChart(roster, nil).Build()
	assert.True(t, errors.Is(err, report.ErrNoChartData))
}
