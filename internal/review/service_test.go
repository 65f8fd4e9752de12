package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/robalyx/airlock/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var serviceNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type recordingAudit struct {
	calls int
}

func (a *recordingAudit) Write(context.Context, uint64, *checker.ScanResult) ([]string, error) {
	a.calls++
	return []string{"audit.json"}, nil
}

func establishedRecord(id uint64) *member.Record {
	joined := serviceNow.AddDate(-1, 0, 0)
	return &member.Record{
		ID:         id,
		Username:   "longtime_member",
		AvatarHash: "hash",
		CreatedAt:  serviceNow.AddDate(-4, 0, 0),
		JoinedAt:   &joined,
	}
}

func newTestService(t *testing.T, roster []*member.Record, surface *fakeSurface, locker review.Locker, audit review.AuditWriter) (*review.Service, *fakeExecutor) {
	t.Helper()

	executor := &fakeExecutor{}
	classifier := checker.NewClassifier(checker.DefaultConfig(), nil, zaptest.NewLogger(t))
	service := review.NewService(&fakeRoster{records: roster}, surface, executor, locker, audit,
		classifier, testConfig(), zaptest.NewLogger(t))

	return service, executor
}

func TestService_ReviewWithoutFlags(t *testing.T) {
	t.Parallel()

	surface := newFakeSurface(nil)
	audit := &recordingAudit{}
	service, _ := newTestService(t, []*member.Record{establishedRecord(1), establishedRecord(2)}, surface, nil, audit)

	outcome, err := service.Review(t.Context(), review.Request{
		GuildID: testGuild, ChannelID: testChannel, ModeratorID: testModerator, Now: serviceNow,
	})
	require.NoError(t, err)

	assert.Empty(t, outcome.Scan.Flagged)
	assert.Nil(t, outcome.Session)
	assert.Zero(t, surface.sentCount())
	assert.Zero(t, audit.calls)
}

func TestService_ReviewBansFlagged(t *testing.T) {
	t.Parallel()

	suspicious := establishedRecord(2)
	suspicious.AvatarHash = ""

	surface := newFakeSurface(func(_ int, messageID uint64) []review.Signal {
		return []review.Signal{decide(messageID, review.EmojiBan)}
	})
	audit := &recordingAudit{}
	service, executor := newTestService(t, []*member.Record{establishedRecord(1), suspicious}, surface, nil, audit)

	outcome, err := service.Review(t.Context(), review.Request{
		GuildID:     testGuild,
		ChannelID:   testChannel,
		ModeratorID: testModerator,
		Grouping:    enum.GroupingExactPair,
		Mode:        enum.ReviewModeSingle,
		Now:         serviceNow,
	})
	require.NoError(t, err)

	require.Len(t, outcome.Scan.Flagged, 1)
	require.NotNil(t, outcome.Session)
	assert.Equal(t, []uint64{2}, executor.applied)
	assert.Equal(t, []string{"audit.json"}, outcome.AuditFiles)
	assert.Equal(t, 1, audit.calls)
}

func TestService_ReviewRejectsConcurrentSession(t *testing.T) {
	t.Parallel()

	suspicious := establishedRecord(2)
	suspicious.AvatarHash = ""

	locker := review.NewLocalLocker()
	ok, err := locker.Acquire(t.Context(), testGuild, "other-session", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	surface := newFakeSurface(nil)
	audit := &recordingAudit{}
	service, _ := newTestService(t, []*member.Record{suspicious}, surface, locker, audit)

	_, err = service.Review(t.Context(), review.Request{
		GuildID: testGuild, ChannelID: testChannel, ModeratorID: testModerator, Now: serviceNow,
	})
	require.ErrorIs(t, err, review.ErrSessionActive)
	assert.Zero(t, surface.sentCount())
	assert.Zero(t, audit.calls, "a rejected review must not write an audit trail")
}

func TestLocalLocker(t *testing.T) {
	t.Parallel()

	locker := review.NewLocalLocker()
	ctx := t.Context()

	ok, err := locker.Acquire(ctx, 1, "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = locker.Acquire(ctx, 1, "b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = locker.Acquire(ctx, 2, "b", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, locker.Release(ctx, 1, "b"))
	ok, _ = locker.Acquire(ctx, 1, "c", time.Minute)
	assert.False(t, ok)

	require.NoError(t, locker.Release(ctx, 1, "a"))
	ok, _ = locker.Acquire(ctx, 1, "c", time.Minute)
	assert.True(t, ok)

	ok, _ = locker.Acquire(ctx, 3, "short", time.Nanosecond)
	require.True(t, ok)
	time.Sleep(time.Millisecond)
	ok, _ = locker.Acquire(ctx, 3, "next", time.Minute)
	assert.True(t, ok)
}
