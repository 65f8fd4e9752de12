package review

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robalyx/airlock/internal/checker"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Request describes one moderator invocation.
type Request struct {
	GuildID     uint64
	ChannelID   uint64
	ModeratorID uint64
	Grouping    enum.Grouping
	Mode        enum.ReviewMode
	// Now is the reference instant for the scan. Zero means the current time.
	Now time.Time
}

// Outcome is the result of a scan and, when members were flagged, its review.
type Outcome struct {
	Roster     []*member.Record
	Scan       *checker.ScanResult
	Session    *SessionResult
	AuditFiles []string
}

// Service runs scans and review sessions against a platform.
type Service struct {
	roster     Roster
	surface    Surface
	executor   Executor
	locker     Locker
	audit      AuditWriter
	classifier *checker.Classifier
	cfg        Config
	logger     *zap.Logger
}

// NewService creates a review service. A nil locker falls back to an
// in-process lock and a nil audit writer disables the audit trail.
func NewService(
	roster Roster, surface Surface, executor Executor, locker Locker, audit AuditWriter,
	classifier *checker.Classifier, cfg Config, logger *zap.Logger,
) *Service {
	if locker == nil {
		locker = NewLocalLocker()
	}

	return &Service{
		roster:     roster,
		surface:    surface,
		executor:   executor,
		locker:     locker,
		audit:      audit,
		classifier: classifier,
		cfg:        cfg,
		logger:     logger.Named("review_service"),
	}
}

// Scan fetches the roster and classifies it without starting a review.
func (s *Service) Scan(ctx context.Context, req Request) (*Outcome, error) {
	ctx, span := otel.Tracer("airlock/review").Start(ctx, "review.scan")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("guild.id", int64(req.GuildID)),
		attribute.String("scan.grouping", req.Grouping.String()),
	)

	roster, err := s.roster.ListMembers(ctx, req.GuildID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list members")
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	result := s.classifier.Classify(roster, now, checker.ScanOptions{
		Grouping: req.Grouping,
		Bulk:     req.Mode != enum.ReviewModeSingle,
	})
	span.SetAttributes(attribute.Int("scan.flagged", len(result.Flagged)))

	outcome := &Outcome{Roster: roster, Scan: result}
	if s.audit != nil && len(result.Flagged) > 0 {
		files, err := s.audit.Write(ctx, req.GuildID, result)
		if err != nil {
			s.logger.Error("Failed to write audit trail", zap.Error(err), zap.Uint64("guildID", req.GuildID))
		}
		outcome.AuditFiles = files
	}

	return outcome, nil
}

// Review takes the community's review lock, scans the roster and, if any
// member is flagged, runs a confirmation session. Only one review per
// community runs at a time and a rejected review scans nothing.
func (s *Service) Review(ctx context.Context, req Request) (*Outcome, error) {
	sessionID := uuid.NewString()

	acquired, err := s.locker.Acquire(ctx, req.GuildID, sessionID, s.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire review lock: %w", err)
	}
	if !acquired {
		return nil, ErrSessionActive
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), req.GuildID, sessionID); err != nil {
			s.logger.Warn("Failed to release review lock", zap.Error(err))
		}
	}()

	outcome, err := s.Scan(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(outcome.Scan.Flagged) == 0 {
		return outcome, nil
	}

	batches := Plan(outcome.Scan.Flagged, req.Mode, s.cfg.BatchSize)
	session := newSession(sessionID, req.GuildID, req.ChannelID, req.ModeratorID, batches,
		s.surface, s.executor, s.cfg, s.logger)

	s.logger.Info("Starting review session",
		zap.String("sessionID", session.ID),
		zap.Uint64("guildID", req.GuildID),
		zap.Uint64("moderatorID", req.ModeratorID),
		zap.String("mode", req.Mode.String()),
		zap.Int("batches", len(batches)))

	result, err := session.Run(ctx)
	outcome.Session = result
	if err != nil {
		return outcome, fmt.Errorf("review session failed: %w", err)
	}

	return outcome, nil
}
