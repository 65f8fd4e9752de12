package discord

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/airlock/internal/discord/rate"
	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/robalyx/airlock/internal/review"
	"github.com/robalyx/airlock/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testApplicationID snowflake.ID = 123456789012345678

// newTestClient builds a disgo client offline. The application ID is encoded
// in the first token segment.
func newTestClient(t *testing.T) bot.Client {
	t.Helper()

	token := base64.RawStdEncoding.EncodeToString([]byte(testApplicationID.String())) + ".secret.signature"
	client, err := disgo.New(token)
	require.NoError(t, err)

	return client
}

func TestPlatformWithClient(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	assert.Equal(t, testApplicationID, client.ApplicationID())
	require.NotNil(t, client.Rest())

	platform := NewPlatform(client, rate.New(0, 0), utils.DefaultRetryOptions(), zaptest.NewLogger(t))

	err := platform.ApplyAction(t.Context(), 1, enum.Action(99), &member.Record{ID: 2}, "cleanup")
	require.ErrorIs(t, err, ErrUnsupportedAction)

	signals, stop := platform.Subscribe(t.Context(), 3)
	stop()
	stop()

	_, open := <-signals
	assert.False(t, open)
}

func TestMapError(t *testing.T) {
	t.Parallel()

	forbidden := &rest.Error{
		Response: &http.Response{StatusCode: http.StatusForbidden},
		Message:  "Missing Permissions",
	}
	err := mapError(fmt.Errorf("request failed: %w", forbidden))
	require.ErrorIs(t, err, review.ErrPermissionDenied)
	assert.Contains(t, err.Error(), "Missing Permissions")

	notFound := &rest.Error{Response: &http.Response{StatusCode: http.StatusNotFound}, Message: "Unknown Member"}
	err = mapError(notFound)
	assert.NotErrorIs(t, err, review.ErrPermissionDenied)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other))
	assert.NoError(t, mapError(nil))
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	avatar := "a1b2c3"
	nick := "Nickname"
	global := "Global"
	joined := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	id := snowflake.New(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))

	record := NewRecord(discord.Member{
		User: discord.User{
			ID:         id,
			Username:   "someone",
			GlobalName: &global,
			Avatar:     &avatar,
		},
		Nick:     &nick,
		JoinedAt: joined,
	})

	assert.Equal(t, uint64(id), record.ID)
	assert.Equal(t, "someone", record.Username)
	assert.Equal(t, "Nickname", record.DisplayName)
	assert.Equal(t, "a1b2c3", record.AvatarHash)
	assert.Contains(t, record.AvatarURL, "a1b2c3")
	assert.Equal(t, fmt.Sprintf("<@%d>", uint64(id)), record.Mention)
	assert.True(t, record.CreatedAt.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, record.JoinedAt)
	assert.True(t, record.JoinedAt.Equal(joined))

	bare := NewRecord(discord.Member{User: discord.User{ID: id, Username: "bare", GlobalName: &global}})
	assert.Equal(t, "Global", bare.DisplayName)
	assert.False(t, bare.HasAvatar())
	assert.Nil(t, bare.JoinedAt)
}

func TestBuildEmbed(t *testing.T) {
	t.Parallel()

	t.Run("small batch uses fields", func(t *testing.T) {
		t.Parallel()

		embed := BuildEmbed(&review.Message{
			Title:       "Suspicious member",
			Description: "React to decide",
			Entries:     []review.Entry{{Name: "user (1)", Value: "<@1>\n- Using the default avatar"}},
			Footer:      "Round 1 of 1",
			Color:       0xED4245,
		})

		assert.Equal(t, "Suspicious member", embed.Title)
		require.Len(t, embed.Fields, 1)
		assert.Equal(t, "user (1)", embed.Fields[0].Name)
	})

	t.Run("large batch is listed in the description", func(t *testing.T) {
		t.Parallel()

		entries := make([]review.Entry, 0, 400)
		for i := range 400 {
			entries = append(entries, review.Entry{
				Name:  fmt.Sprintf("member_with_a_long_name_%d (%d)", i, i),
				Value: fmt.Sprintf("<@%d>\nCreated: 2024-01-01", i),
			})
		}

		embed := BuildEmbed(&review.Message{Title: "Suspicious cohort", Description: "header", Entries: entries})

		assert.Empty(t, embed.Fields)
		assert.LessOrEqual(t, len([]rune(embed.Description)), maxDescriptionLength)
		assert.True(t, strings.HasPrefix(embed.Description, "header\n\n- <@0> member_with_a_long_name_0 (0)"))
		assert.Contains(t, embed.Description, "more")
	})
}
