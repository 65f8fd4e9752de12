package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/review"
	"github.com/robalyx/airlock/pkg/utils"
	"go.uber.org/zap"
)

// memberPageSize is the maximum page size of the list guild members endpoint.
const memberPageSize = 1000

// ListMembers returns the full roster of a guild. Concurrent calls for the
// same guild share one fetch.
func (p *Platform) ListMembers(ctx context.Context, guildID uint64) ([]*member.Record, error) {
	result, err, shared := p.members.Do(strconv.FormatUint(guildID, 10), func() (any, error) {
		return p.fetchMembers(ctx, guildID)
	})
	if err != nil {
		return nil, err
	}

	if shared {
		p.logger.Debug("Shared roster fetch", zap.Uint64("guildID", guildID))
	}

	return result.([]*member.Record), nil
}

// fetchMembers pages through the guild member list, retrying each page.
func (p *Platform) fetchMembers(ctx context.Context, guildID uint64) ([]*member.Record, error) {
	var (
		records []*member.Record
		after   snowflake.ID
	)

	for {
		chunk, err := utils.WithRetry(ctx, func() ([]discord.Member, error) {
			members, err := p.client.Rest().GetMembers(snowflake.ID(guildID), memberPageSize, after, rest.WithCtx(ctx))
			if err = mapError(err); errors.Is(err, review.ErrPermissionDenied) {
				return nil, utils.Permanent(err)
			}
			return members, err
		}, p.retry)
		if err != nil {
			return nil, fmt.Errorf("failed to get guild members: %w", err)
		}

		for _, m := range chunk {
			records = append(records, NewRecord(m))
		}

		if len(chunk) < memberPageSize {
			break
		}
		after = chunk[len(chunk)-1].User.ID
	}

	p.logger.Info("Fetched guild roster",
		zap.Uint64("guildID", guildID),
		zap.Int("members", len(records)))

	return records, nil
}

// NewRecord converts a guild member into a scan record.
func NewRecord(m discord.Member) *member.Record {
	record := &member.Record{
		ID:        uint64(m.User.ID),
		Username:  m.User.Username,
		Mention:   m.User.Mention(),
		CreatedAt: m.User.ID.Time(),
		Bot:       m.User.Bot,
	}

	switch {
	case m.Nick != nil:
		record.DisplayName = *m.Nick
	case m.User.GlobalName != nil:
		record.DisplayName = *m.User.GlobalName
	}

	if m.User.Avatar != nil {
		record.AvatarHash = *m.User.Avatar
		record.AvatarURL = m.User.EffectiveAvatarURL()
	}

	if !m.JoinedAt.IsZero() {
		joined := m.JoinedAt
		record.JoinedAt = &joined
	}

	return record
}
