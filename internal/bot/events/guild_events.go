package events

import (
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// GuildEventHandler logs guild membership changes of the bot.
type GuildEventHandler struct {
	commandGuildID snowflake.ID
	logger         *zap.Logger
}

// NewGuildEventHandler creates a handler. commandGuildID is the guild the
// commands are registered in, or zero for global commands.
func NewGuildEventHandler(commandGuildID snowflake.ID, logger *zap.Logger) *GuildEventHandler {
	return &GuildEventHandler{
		commandGuildID: commandGuildID,
		logger:         logger.Named("guild_events"),
	}
}

// OnGuildJoin warns when the bot joins a guild its commands are not registered in.
func (h *GuildEventHandler) OnGuildJoin(event *events.GuildJoin) {
	h.logger.Info("Bot joined a new guild",
		zap.String("guildID", event.Guild.ID.String()),
		zap.String("guildName", event.Guild.Name))

	if !h.CommandsAvailable(event.Guild.ID) {
		h.logger.Warn("Commands are registered for another guild only",
			zap.String("guildID", event.Guild.ID.String()),
			zap.String("commandGuildID", h.commandGuildID.String()))
	}
}

// OnGuildLeave logs when the bot is removed from a guild.
func (h *GuildEventHandler) OnGuildLeave(event *events.GuildLeave) {
	h.logger.Info("Bot left a guild", zap.String("guildID", event.GuildID.String()))
}

// CommandsAvailable reports whether the commands can be used in the guild.
func (h *GuildEventHandler) CommandsAvailable(guildID snowflake.ID) bool {
	return h.commandGuildID == 0 || h.commandGuildID == guildID
}
