package member

import (
	"time"
)

// Record is a read-only snapshot of one community member taken at scan time.
// Optional fields are left empty when the platform did not report them.
type Record struct {
	ID          uint64     `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"displayName"`
	Mention     string     `json:"mention"`
	AvatarHash  string     `json:"avatarHash"`
	AvatarURL   string     `json:"avatarUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	JoinedAt    *time.Time `json:"joinedAt"`
	Bot         bool       `json:"bot"`
}

// HasAvatar reports whether the member set a custom avatar.
func (r *Record) HasAvatar() bool {
	return r.AvatarHash != ""
}

// Usable reports whether the record carries an identity the scan can act on.
func (r *Record) Usable() bool {
	return r != nil && r.ID != 0
}

// HasJoinTime reports whether the join instant is known.
func (r *Record) HasJoinTime() bool {
	return r.JoinedAt != nil && !r.JoinedAt.IsZero()
}

// Name returns the label shown to moderators.
func (r *Record) Name() string {
	switch {
	case r.Username != "":
		return r.Username
	case r.DisplayName != "":
		return r.DisplayName
	default:
		return "unknown"
	}
}
