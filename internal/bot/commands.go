package bot

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/airlock/internal/bot/constants"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/robalyx/airlock/pkg/utils"
)

const maxContentLength = 2000

var (
	ErrInvalidMode     = errors.New("unknown review mode")
	ErrInvalidGrouping = errors.New("unknown grouping")
)

// Options are the parsed command options.
type Options struct {
	Mode     enum.ReviewMode
	Grouping enum.Grouping
}

// optionReader is satisfied by discord.SlashCommandInteractionData.
type optionReader interface {
	OptString(name string) (string, bool)
}

// Commands returns the slash commands the bot registers.
func Commands() []discord.ApplicationCommandCreate {
	groupingOption := discord.ApplicationCommandOptionString{
		Name:        constants.GroupingOptionName,
		Description: "How accounts created and joined together are grouped",
		Choices:     stringChoices(enum.GroupingStrings()),
	}

	return []discord.ApplicationCommandCreate{
		discord.SlashCommandCreate{
			Name:        constants.SusCommandName,
			Description: "List suspicious members without taking action",
			Options:     []discord.ApplicationCommandOption{groupingOption},
		},
		discord.SlashCommandCreate{
			Name:        constants.AirlockCommandName,
			Description: "Review suspicious members and ban or kick them",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        constants.ModeOptionName,
					Description: "Review one member at a time, fixed batches, or whole cohorts",
					Choices:     stringChoices(enum.ReviewModeStrings()),
				},
				groupingOption,
			},
		},
	}
}

func stringChoices(values []string) []discord.ApplicationCommandOptionChoiceString {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(values))
	for _, value := range values {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{Name: value, Value: value})
	}
	return choices
}

// ParseOptions reads the mode and grouping options. Missing options mean
// single mode and no grouping.
func ParseOptions(data optionReader) (Options, error) {
	opts := Options{Mode: enum.ReviewModeSingle, Grouping: enum.GroupingNone}

	if value, ok := data.OptString(constants.ModeOptionName); ok {
		mode, err := enum.ReviewModeString(value)
		if err != nil {
			return opts, fmt.Errorf("%w: %q", ErrInvalidMode, value)
		}
		opts.Mode = mode
	}

	if value, ok := data.OptString(constants.GroupingOptionName); ok {
		grouping, err := enum.GroupingString(value)
		if err != nil {
			return opts, fmt.Errorf("%w: %q", ErrInvalidGrouping, value)
		}
		opts.Grouping = grouping
	}

	return opts, nil
}

// HasAccess reports whether the member may run moderation commands.
func HasAccess(m *discord.ResolvedMember, moderatorRoleID snowflake.ID) bool {
	if m == nil {
		return false
	}
	if m.Permissions.Has(discord.PermissionAdministrator) {
		return true
	}
	return moderatorRoleID != 0 && slices.Contains(m.RoleIDs, moderatorRoleID)
}

// ListFlagged renders up to limit flagged members, one per line.
func ListFlagged(flagged []*member.Flagged, limit int) string {
	if len(flagged) == 0 {
		return ""
	}

	shown := flagged[:min(limit, len(flagged))]
	lines := make([]string, 0, len(shown))
	for i, f := range shown {
		lines = append(lines, fmt.Sprintf("%d. %s (%s): %s", i+1, mentionOf(f.Record), f.Record.Name(), f.Reasons))
	}

	list, dropped := utils.JoinLimited(lines, "\n", maxContentLength/2)
	if more := dropped + len(flagged) - len(shown); more > 0 {
		list += fmt.Sprintf("\n...and %d more", more)
	}

	return list
}

// TruncateContent fits text into one Discord message.
func TruncateContent(content string) string {
	return utils.TruncateRunes(strings.TrimSpace(content), maxContentLength)
}

func mentionOf(record *member.Record) string {
	if record.Mention != "" {
		return record.Mention
	}
	return fmt.Sprintf("<@%d>", record.ID)
}
