package review_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/robalyx/airlock/internal/review"
)

const (
	testGuild     uint64 = 1000
	testChannel   uint64 = 2000
	testModerator uint64 = 3000
)

// fakeSurface records everything a session shows and replays scripted signals.
type fakeSurface struct {
	mu        sync.Mutex
	nextID    uint64
	current   chan review.Signal
	messages  []*review.Message
	reactions map[uint64][]string
	notices   []string

	// script returns the signals delivered after the message with the given round number is sent.
	script func(round int, messageID uint64) []review.Signal
}

func newFakeSurface(script func(round int, messageID uint64) []review.Signal) *fakeSurface {
	return &fakeSurface{
		nextID:    500,
		reactions: make(map[uint64][]string),
		script:    script,
	}
}

func (f *fakeSurface) SendMessage(_ context.Context, _ uint64, msg *review.Message) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	round := len(f.messages)
	f.messages = append(f.messages, msg)

	if f.script != nil {
		for _, signal := range f.script(round, f.nextID) {
			f.current <- signal
		}
	}

	return f.nextID, nil
}

func (f *fakeSurface) AddReaction(_ context.Context, _, messageID uint64, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reactions[messageID] = append(f.reactions[messageID], emoji)
	return nil
}

func (f *fakeSurface) Subscribe(_ context.Context, _ uint64) (<-chan review.Signal, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = make(chan review.Signal, 32)
	return f.current, func() {}
}

func (f *fakeSurface) Notify(_ context.Context, _ uint64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, text)
	return nil
}

func (f *fakeSurface) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// fakeExecutor records applied actions and denies the configured members.
type fakeExecutor struct {
	mu      sync.Mutex
	deny    map[uint64]bool
	applied []uint64
	actions []enum.Action
}

func (e *fakeExecutor) ApplyAction(_ context.Context, _ uint64, action enum.Action, record *member.Record, _ string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.deny[record.ID] {
		return fmt.Errorf("remove member %d: %w", record.ID, review.ErrPermissionDenied)
	}
	e.applied = append(e.applied, record.ID)
	e.actions = append(e.actions, action)
	return nil
}

// fakeRoster returns a fixed roster.
type fakeRoster struct {
	records []*member.Record
}

func (r *fakeRoster) ListMembers(context.Context, uint64) ([]*member.Record, error) {
	return r.records, nil
}

func decide(messageID uint64, emoji string) review.Signal {
	return review.Signal{UserID: testModerator, MessageID: messageID, Emoji: emoji}
}

func flagged(id uint64, cohortKey string) *member.Flagged {
	reasons := member.Reasons{}
	reasons.Add(enum.SignalTypeNoAvatar, "Using the default avatar")
	if cohortKey != "" {
		reasons.Add(enum.SignalTypeDuplicateCohort, "Created 2024-01-01 and joined 2024-02-01 in a cohort of 6 accounts")
	}

	f, err := member.NewFlagged(&member.Record{
		ID:        id,
		Username:  fmt.Sprintf("user%d", id),
		Mention:   fmt.Sprintf("<@%d>", id),
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}, reasons, cohortKey)
	if err != nil {
		panic(err)
	}
	return f
}

func testConfig() review.Config {
	cfg := review.DefaultConfig()
	cfg.SingleTimeout = 50 * time.Millisecond
	cfg.BulkTimeout = 50 * time.Millisecond
	cfg.BatchSize = 3
	cfg.ApplyConcurrency = 2
	return cfg
}
