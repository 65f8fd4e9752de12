package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const auditReasonLimit = 512

// SessionResult summarizes a finished review session.
type SessionResult struct {
	ID      string
	Rounds  []*Round
	Aborted bool
	Pending int
}

// Tally counts outcomes per member across all rounds.
func (r *SessionResult) Tally() Tally {
	var t Tally
	for _, round := range r.Rounds {
		switch round.State {
		case enum.RoundStateDone:
			for _, result := range round.Results {
				switch {
				case result.Err != nil:
					t.Failed++
				case result.Action == enum.ActionKick:
					t.Kicked++
				default:
					t.Banned++
				}
			}
		case enum.RoundStateNoAction:
			t.Dismissed += round.Batch.Size()
		case enum.RoundStateTimedOut:
			t.TimedOut += round.Batch.Size()
		case enum.RoundStatePresented, enum.RoundStateAwaitingDecision, enum.RoundStateApplying:
		}
	}
	t.Skipped = r.Pending
	return t
}

// Tally holds per-member outcome counts.
type Tally struct {
	Banned    int
	Kicked    int
	Dismissed int
	TimedOut  int
	Failed    int
	Skipped   int
}

// Session reviews the batches of one scan with one moderator in one channel.
// Batches are processed strictly in order.
type Session struct {
	ID          string
	GuildID     uint64
	ChannelID   uint64
	ModeratorID uint64
	Batches     []*member.Batch

	surface  Surface
	executor Executor
	cfg      Config
	logger   *zap.Logger
}

// NewSession creates a session over planned batches.
func NewSession(
	guildID, channelID, moderatorID uint64, batches []*member.Batch,
	surface Surface, executor Executor, cfg Config, logger *zap.Logger,
) *Session {
	return newSession(uuid.NewString(), guildID, channelID, moderatorID, batches, surface, executor, cfg, logger)
}

func newSession(
	id string, guildID, channelID, moderatorID uint64, batches []*member.Batch,
	surface Surface, executor Executor, cfg Config, logger *zap.Logger,
) *Session {
	return &Session{
		ID:          id,
		GuildID:     guildID,
		ChannelID:   channelID,
		ModeratorID: moderatorID,
		Batches:     batches,
		surface:     surface,
		executor:    executor,
		cfg:         cfg,
		logger: logger.Named("review_session").With(
			zap.String("sessionID", id),
			zap.Uint64("guildID", guildID),
		),
	}
}

// Run presents each batch in turn and applies the moderator's decisions.
// A timed out single-member round stops the session; a timed out bulk round
// only ends that round.
func (s *Session) Run(ctx context.Context) (*SessionResult, error) {
	result := &SessionResult{ID: s.ID}

	for i, batch := range s.Batches {
		round, err := s.runRound(ctx, batch)
		if round != nil {
			result.Rounds = append(result.Rounds, round)
		}
		if err != nil {
			result.Pending = s.remaining(i + 1)
			return result, err
		}

		if round.State == enum.RoundStateTimedOut && !batch.Bulk {
			result.Aborted = true
			result.Pending = s.remaining(i + 1)
			s.logger.Info("Review stopped after timeout",
				zap.Int("round", batch.Index),
				zap.Int("pending", result.Pending))
			break
		}
	}

	s.logger.Info("Review session finished",
		zap.Int("rounds", len(result.Rounds)),
		zap.Bool("aborted", result.Aborted))

	return result, nil
}

// remaining counts members in batches from index onward.
func (s *Session) remaining(from int) int {
	count := 0
	for _, batch := range s.Batches[from:] {
		count += batch.Size()
	}
	return count
}

// runRound drives one batch through the round state machine.
func (s *Session) runRound(ctx context.Context, batch *member.Batch) (*Round, error) {
	ctx, span := otel.Tracer("airlock/review").Start(ctx, "review.round")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("round.index", batch.Index),
		attribute.Int("round.size", batch.Size()),
		attribute.Bool("round.bulk", batch.Bulk),
	)

	round := NewRound(batch)
	timeout := s.cfg.timeoutFor(batch.Bulk)

	signals, stop := s.surface.Subscribe(ctx, s.ChannelID)
	defer stop()

	messageID, err := s.surface.SendMessage(ctx, s.ChannelID, presentRound(round, len(s.Batches), timeout))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "present round")
		return nil, fmt.Errorf("failed to present round %d: %w", batch.Index, err)
	}
	round.MessageID = messageID

	offered := round.Decisions()
	for _, decision := range offered {
		emoji, _ := EmojiForDecision(decision)
		if err := s.surface.AddReaction(ctx, s.ChannelID, messageID, emoji); err != nil {
			s.logger.Warn("Failed to add decision reaction",
				zap.Error(err),
				zap.String("emoji", emoji))
		}
	}

	if err := round.Transition(enum.RoundStateAwaitingDecision); err != nil {
		return round, err
	}

	decision, err := AwaitDecision(ctx, signals, NewMatcher(s.ModeratorID, messageID, offered), timeout)
	if err != nil && !errors.Is(err, ErrSubscriptionClosed) {
		return round, fmt.Errorf("failed to await decision: %w", err)
	}
	round.Decision = decision
	span.SetAttributes(attribute.String("round.decision", decision.String()))

	action, hasAction := decision.Action()
	switch {
	case decision == enum.DecisionTimeout:
		if err := round.Transition(enum.RoundStateTimedOut); err != nil {
			return round, err
		}

		remaining := 0
		if !batch.Bulk {
			remaining = s.remaining(batch.Index + 1)
		}
		s.notify(ctx, timeoutNotice(round, timeout, remaining))

	case hasAction:
		if err := round.Transition(enum.RoundStateApplying); err != nil {
			return round, err
		}

		round.Results = s.apply(ctx, batch, action)
		if err := round.Transition(enum.RoundStateDone); err != nil {
			return round, err
		}
		s.notify(ctx, resultNotice(round))

	default:
		if err := round.Transition(enum.RoundStateNoAction); err != nil {
			return round, err
		}
		s.notify(ctx, noActionNotice(round))
	}

	s.logger.Debug("Round finished",
		zap.Int("round", batch.Index),
		zap.String("decision", decision.String()),
		zap.String("state", round.State.String()),
		zap.Int("failures", round.Failures()))

	return round, nil
}

// apply issues the action for every member. Each member's failure is kept separately.
func (s *Session) apply(ctx context.Context, batch *member.Batch, action enum.Action) []ActionResult {
	results := make([]ActionResult, batch.Size())
	p := pool.New().WithMaxGoroutines(max(s.cfg.ApplyConcurrency, 1))

	for i, f := range batch.Members {
		p.Go(func() {
			err := s.executor.ApplyAction(ctx, s.GuildID, action, f.Record, auditReason(f))
			if err != nil {
				s.logger.Warn("Failed to apply action",
					zap.Error(err),
					zap.Uint64("memberID", f.Record.ID),
					zap.String("action", action.String()))
			}
			results[i] = ActionResult{Member: f, Action: action, Err: err}
		})
	}
	p.Wait()

	return results
}

func (s *Session) notify(ctx context.Context, text string) {
	if err := s.surface.Notify(ctx, s.ChannelID, text); err != nil {
		s.logger.Warn("Failed to send notice", zap.Error(err))
	}
}

// auditReason builds the reason recorded in the platform's audit log.
func auditReason(f *member.Flagged) string {
	reason := "Airlock: " + f.Reasons.String()
	if len(reason) > auditReasonLimit {
		reason = strings.ToValidUTF8(reason[:auditReasonLimit-3], "") + "..."
	}
	return reason
}
