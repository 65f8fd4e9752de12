package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/airlock/internal/bot/constants"
	guildEvents "github.com/robalyx/airlock/internal/bot/events"
	airlockDiscord "github.com/robalyx/airlock/internal/discord"
	"github.com/robalyx/airlock/internal/discord/rate"
	"github.com/robalyx/airlock/internal/report"
	"github.com/robalyx/airlock/internal/review"
	"github.com/robalyx/airlock/internal/setup"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Bot registers the moderation commands and runs scans and reviews for them.
type Bot struct {
	client          bot.Client
	service         *review.Service
	summarizer      *report.Summarizer
	guildID         snowflake.ID
	moderatorRoleID snowflake.ID
	ctx             context.Context //nolint:containedctx // bot lifetime, cancelled by Close
	cancel          context.CancelFunc
	logger          *zap.Logger
}

// New creates the Discord client and wires the review service onto it.
func New(app *setup.App) (*Bot, error) {
	discordCfg := app.Config.Bot.Discord
	ctx, cancel := context.WithCancel(context.Background())

	b := &Bot{
		summarizer:      report.NewSummarizer(language.English),
		guildID:         snowflake.ID(discordCfg.GuildID),
		moderatorRoleID: snowflake.ID(discordCfg.ModeratorRoleID),
		ctx:             ctx,
		cancel:          cancel,
		logger:          app.Logger.Named("bot"),
	}

	guildHandler := guildEvents.NewGuildEventHandler(b.guildID, app.Logger)

	client, err := disgo.New(discordCfg.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMembers,
				gateway.IntentGuildMessageReactions,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnApplicationCommandInteraction: b.handleApplicationCommandInteraction,
			OnGuildJoin:                     guildHandler.OnGuildJoin,
			OnGuildLeave:                    guildHandler.OnGuildLeave,
		}),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}
	b.client = client

	interval, jitter := app.Config.Bot.Review.Pacing()
	platform := airlockDiscord.NewPlatform(
		client, rate.New(interval, jitter), app.Config.Common.Retry.RetryOptions(), app.Logger,
	)

	b.service = review.NewService(
		platform, platform, platform, app.Locker, app.Audit,
		app.Classifier, app.Config.Bot.Review.ReviewConfig(), app.Logger,
	)

	return b, nil
}

// Start registers the commands and opens the gateway connection.
// Commands are registered for one guild when a guild is configured.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Registering commands", zap.Uint64("guildID", uint64(b.guildID)))

	var err error
	if b.guildID != 0 {
		_, err = b.client.Rest().SetGuildCommands(b.client.ApplicationID(), b.guildID, Commands())
	} else {
		_, err = b.client.Rest().SetGlobalCommands(b.client.ApplicationID(), Commands())
	}
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	b.logger.Info("Starting bot")
	return b.client.OpenGateway(ctx)
}

// Close cancels running reviews and shuts down the gateway connection.
func (b *Bot) Close(ctx context.Context) {
	b.logger.Info("Closing bot")
	b.cancel()
	b.client.Close(ctx)
}

// handleApplicationCommandInteraction defers the response and runs the command
// in a goroutine so long reviews do not block the gateway.
func (b *Bot) handleApplicationCommandInteraction(event *events.ApplicationCommandInteractionCreate) {
	go func() {
		data := event.SlashCommandInteractionData()

		// Defer response to prevent Discord timeout while processing
		if err := event.DeferCreateMessage(false); err != nil {
			b.logger.Error("Failed to defer create message", zap.Error(err))
			return
		}

		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in application command interaction handler", zap.Any("panic", r))
				b.respond(event, constants.InternalErrorMessage, nil)
			}
			b.logger.Debug("Application command interaction handled",
				zap.String("command", data.CommandName()),
				zap.Duration("duration", time.Since(start)))
		}()

		guildID := event.GuildID()
		if guildID == nil {
			b.respond(event, constants.GuildOnlyMessage, nil)
			return
		}

		if !HasAccess(event.Member(), b.moderatorRoleID) {
			b.respond(event, constants.NotAllowedMessage, nil)
			return
		}

		opts, err := ParseOptions(data)
		if err != nil {
			b.respond(event, err.Error(), nil)
			return
		}

		req := review.Request{
			GuildID:     uint64(*guildID),
			ChannelID:   uint64(event.ChannelID()),
			ModeratorID: uint64(event.User().ID),
			Grouping:    opts.Grouping,
			Mode:        opts.Mode,
		}

		switch data.CommandName() {
		case constants.SusCommandName:
			b.handleSus(event, req)
		case constants.AirlockCommandName:
			b.handleAirlock(event, req)
		default:
			b.respond(event, "This command is not available.", nil)
		}
	}()
}

// handleSus reports suspicious members without taking action.
func (b *Bot) handleSus(event *events.ApplicationCommandInteractionCreate, req review.Request) {
	outcome, err := b.service.Scan(b.ctx, req)
	if err != nil {
		b.respondError(event, req, err)
		return
	}

	content := b.summarizer.Summary(outcome.Scan, nil, outcome.AuditFiles)
	if list := ListFlagged(outcome.Scan.Flagged, constants.MaxListedMembers); list != "" {
		content += "\n\n" + list
	}

	b.respond(event, content, b.chart(outcome))
}

// handleAirlock scans and walks the moderator through confirmation rounds.
func (b *Bot) handleAirlock(event *events.ApplicationCommandInteractionCreate, req review.Request) {
	b.respond(event, fmt.Sprintf("Scanning members with %s grouping in %s mode...",
		b.summarizer.GroupingLabel(req.Grouping), req.Mode), nil)

	outcome, err := b.service.Review(b.ctx, req)
	if err != nil && outcome == nil {
		b.respondError(event, req, err)
		return
	}
	if err != nil {
		b.logger.Error("Review session ended with an error", zap.Error(err), zap.Uint64("guildID", req.GuildID))
	}

	content := b.summarizer.Summary(outcome.Scan, outcome.Session, outcome.AuditFiles)
	b.respond(event, content, b.chart(outcome))
}

// respondError maps a service error to a moderator-facing message.
func (b *Bot) respondError(event *events.ApplicationCommandInteractionCreate, req review.Request, err error) {
	switch {
	case errors.Is(err, review.ErrSessionActive):
		b.respond(event, constants.SessionActiveMessage, nil)
	case errors.Is(err, review.ErrPermissionDenied):
		b.respond(event, constants.PermissionMessage, nil)
	default:
		b.logger.Error("Command failed", zap.Error(err), zap.Uint64("guildID", req.GuildID))
		b.respond(event, constants.InternalErrorMessage, nil)
	}
}

// chart renders the roster chart PNG, returning nil when there is nothing to plot.
func (b *Bot) chart(outcome *review.Outcome) []byte {
	buf, err := report.NewRosterChart(outcome.Roster, outcome.Scan.Flagged).Build()
	if err != nil {
		if !errors.Is(err, report.ErrNoChartData) {
			b.logger.Warn("Failed to build roster chart", zap.Error(err))
		}
		return nil
	}

	return buf.Bytes()
}

// respond replaces the deferred reply. Interaction tokens expire after
// fifteen minutes, so long reviews fall back to a channel message.
func (b *Bot) respond(event *events.ApplicationCommandInteractionCreate, content string, chart []byte) {
	builder := discord.NewMessageUpdateBuilder().
		SetContent(TruncateContent(content)).
		SetAllowedMentions(&discord.AllowedMentions{}).
		ClearFiles()
	if chart != nil {
		builder.AddFiles(discord.NewFile(constants.ChartFileName, "", bytes.NewReader(chart)))
	}

	_, err := b.client.Rest().UpdateInteractionResponse(event.ApplicationID(), event.Token(), builder.Build())
	if err == nil {
		return
	}

	b.logger.Debug("Falling back to channel message", zap.Error(err))

	create := discord.NewMessageCreateBuilder().
		SetContent(TruncateContent(content)).
		SetAllowedMentions(&discord.AllowedMentions{})
	if chart != nil {
		create.AddFiles(discord.NewFile(constants.ChartFileName, "", bytes.NewReader(chart)))
	}

	if _, err := b.client.Rest().CreateMessage(event.ChannelID(), create.Build()); err != nil {
		b.logger.Error("Failed to send response", zap.Error(err))
	}
}
