package member_test

import (
	"testing"

	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasons_AddKeepsOrderAndDeduplicates(t *testing.T) {
	t.Parallel()

	var reasons member.Reasons

	assert.True(t, reasons.Add(enum.SignalTypeNoAvatar, "Default avatar"))
	assert.True(t, reasons.Add(enum.SignalTypeNewAccount, "Account created 2 days ago"))
	assert.False(t, reasons.Add(enum.SignalTypeNoAvatar, "Default avatar again"))

	require.Len(t, reasons, 2)
	assert.Equal(t, []string{"Default avatar", "Account created 2 days ago"}, reasons.Messages())
	assert.Equal(t, []string{"no_avatar", "new_account"}, reasons.Types())
	assert.Equal(t, "Default avatar; Account created 2 days ago", reasons.String())
}

func TestReasons_AddNormalizesMessage(t *testing.T) {
	t.Parallel()

	var reasons member.Reasons
	reasons.Add(enum.SignalTypeDuplicateCohort, "  Part of\r\na cohort \n of 6  ")

	msg, ok := reasons.Get(enum.SignalTypeDuplicateCohort)
	require.True(t, ok)
	assert.Equal(t, "Part of a cohort of 6", msg)

	_, ok = reasons.Get(enum.SignalTypeBannedAvatar)
	assert.False(t, ok)
}

func TestNewFlagged(t *testing.T) {
	t.Parallel()

	record := &member.Record{ID: 1, Username: "someone"}

	_, err := member.NewFlagged(record, nil, "")
	require.ErrorIs(t, err, member.ErrNoReasons)

	var reasons member.Reasons
	reasons.Add(enum.SignalTypeDuplicateCohort, "Part of a cohort of 6")

	flagged, err := member.NewFlagged(record, reasons, "exact:2024-01-01/2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, "Part of a cohort of 6", flagged.CohortReason())
	assert.Equal(t, "exact:2024-01-01/2024-02-01", flagged.CohortKey)
}

func TestRecord_Helpers(t *testing.T) {
	t.Parallel()

	var nilRecord *member.Record
	assert.False(t, nilRecord.Usable())
	assert.False(t, (&member.Record{}).Usable())

	record := &member.Record{ID: 5, DisplayName: "Display"}
	assert.True(t, record.Usable())
	assert.False(t, record.HasAvatar())
	assert.False(t, record.HasJoinTime())
	assert.Equal(t, "Display", record.Name())

	record.Username = "user"
	record.AvatarHash = "abc"
	assert.True(t, record.HasAvatar())
	assert.Equal(t, "user", record.Name())
}
