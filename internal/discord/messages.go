package discord

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/airlock/internal/review"
	"github.com/robalyx/airlock/pkg/utils"
)

// Discord message and embed limits.
const (
	maxContentLength     = 2000
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxFieldNameLength   = 256
	maxFieldValueLength  = 1024
	maxFooterLength      = 2048
	maxInlineEntries     = 10
	signalBuffer         = 16
)

// SendMessage posts a confirmation message as an embed.
func (p *Platform) SendMessage(ctx context.Context, channelID uint64, msg *review.Message) (uint64, error) {
	create := discord.NewMessageCreateBuilder().
		AddEmbeds(BuildEmbed(msg)).
		SetAllowedMentions(&discord.AllowedMentions{}).
		Build()

	sent, err := p.client.Rest().CreateMessage(snowflake.ID(channelID), create, rest.WithCtx(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", mapError(err))
	}

	return uint64(sent.ID), nil
}

// AddReaction attaches a unicode emoji reaction to a message.
func (p *Platform) AddReaction(ctx context.Context, channelID, messageID uint64, emoji string) error {
	err := p.client.Rest().AddReaction(snowflake.ID(channelID), snowflake.ID(messageID), emoji, rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to add reaction: %w", mapError(err))
	}
	return nil
}

// Notify posts a plain text notice without pinging anyone.
func (p *Platform) Notify(ctx context.Context, channelID uint64, text string) error {
	create := discord.NewMessageCreateBuilder().
		SetContent(utils.TruncateRunes(text, maxContentLength)).
		SetAllowedMentions(&discord.AllowedMentions{}).
		Build()

	if _, err := p.client.Rest().CreateMessage(snowflake.ID(channelID), create, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to send notice: %w", mapError(err))
	}
	return nil
}

// Subscribe streams reactions added in the channel until stop is called.
func (p *Platform) Subscribe(_ context.Context, channelID uint64) (<-chan review.Signal, func()) {
	reactions, closeCollector := bot.NewEventCollector(p.client, func(e *events.GuildMessageReactionAdd) bool {
		return e.ChannelID == snowflake.ID(channelID)
	})

	signals := make(chan review.Signal, signalBuffer)
	done := make(chan struct{})

	go func() {
		defer close(signals)
		for e := range reactions {
			signal := review.Signal{
				UserID:    uint64(e.UserID),
				MessageID: uint64(e.MessageID),
			}
			if e.Emoji.Name != nil {
				signal.Emoji = *e.Emoji.Name
			}

			select {
			case signals <- signal:
			case <-done:
			}
		}
	}()

	var once sync.Once
	return signals, func() {
		once.Do(func() {
			close(done)
			closeCollector()
		})
	}
}

// BuildEmbed renders a review message. Large batches are listed compactly in the description.
func BuildEmbed(msg *review.Message) discord.Embed {
	builder := discord.NewEmbedBuilder().
		SetTitle(utils.TruncateRunes(msg.Title, maxTitleLength)).
		SetColor(msg.Color).
		SetFooterText(utils.TruncateRunes(msg.Footer, maxFooterLength))

	if len(msg.Entries) <= maxInlineEntries {
		builder.SetDescription(utils.TruncateRunes(msg.Description, maxDescriptionLength))
		for _, entry := range msg.Entries {
			builder.AddField(
				utils.TruncateRunes(entry.Name, maxFieldNameLength),
				utils.TruncateRunes(entry.Value, maxFieldValueLength),
				false,
			)
		}
		return builder.Build()
	}

	lines := make([]string, 0, len(msg.Entries))
	for _, entry := range msg.Entries {
		first, _, _ := strings.Cut(entry.Value, "\n")
		lines = append(lines, fmt.Sprintf("- %s %s", first, entry.Name))
	}

	header := msg.Description + "\n\n"
	body, dropped := utils.JoinLimited(lines, "\n", maxDescriptionLength-len([]rune(header))-32)
	if dropped > 0 {
		body += fmt.Sprintf("\n...and %d more", dropped)
	}

	return builder.SetDescription(header + body).Build()
}
