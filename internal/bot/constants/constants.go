package constants

const (
	// Commands.
	SusCommandName     = "sus"
	AirlockCommandName = "airlock"

	// Command options.
	ModeOptionName     = "mode"
	GroupingOptionName = "grouping"

	// Responses.
	ChartFileName    = "roster.png"
	MaxListedMembers = 15

	// Errors shown to moderators.
	NotAllowedMessage    = "You need the moderator role or Administrator to use this command."
	GuildOnlyMessage     = "This command can only be used in a server."
	InternalErrorMessage = "Internal error. Please report this to an administrator."
	SessionActiveMessage = "A review is already running in this server."
	PermissionMessage    = "I am missing permissions to list members in this server."
)
