package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/robalyx/airlock/pkg/utils"
	"go.uber.org/zap"
)

// ErrUnsupportedAction is returned for actions the platform cannot apply.
var ErrUnsupportedAction = errors.New("unsupported action")

// maxAuditReasonLength is the limit of the X-Audit-Log-Reason header.
const maxAuditReasonLength = 512

// ApplyAction bans or kicks one member. A refused request returns review.ErrPermissionDenied.
func (p *Platform) ApplyAction(
	ctx context.Context, guildID uint64, action enum.Action, record *member.Record, reason string,
) error {
	if err := p.limiter.WaitForNextSlot(ctx); err != nil {
		return err
	}

	opts := []rest.RequestOpt{
		rest.WithCtx(ctx),
		rest.WithReason(utils.TruncateRunes(reason, maxAuditReasonLength)),
	}

	var err error
	switch action {
	case enum.ActionBan:
		err = p.client.Rest().AddBan(snowflake.ID(guildID), snowflake.ID(record.ID), 0, opts...)
	case enum.ActionKick:
		err = p.client.Rest().RemoveMember(snowflake.ID(guildID), snowflake.ID(record.ID), opts...)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}

	if err != nil {
		return fmt.Errorf("failed to %s member %d: %w", action.Verb(), record.ID, mapError(err))
	}

	p.logger.Info("Applied moderation action",
		zap.Uint64("guildID", guildID),
		zap.Uint64("memberID", record.ID),
		zap.String("action", action.String()))

	return nil
}
