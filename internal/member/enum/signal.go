package enum

// SignalType identifies which suspicion signal produced a reason.
//
//go:generate go tool enumer -type=SignalType -trimprefix=SignalType -transform=snake
type SignalType int

const (
	// SignalTypeNewAccount fires for accounts created within the new-account window.
	SignalTypeNewAccount SignalType = iota
	// SignalTypeRecentJoin fires for members who joined within the probation window.
	SignalTypeRecentJoin
	// SignalTypeNoAvatar fires for accounts still using the default avatar.
	SignalTypeNoAvatar
	// SignalTypeTemplatedUsername fires for handles that look generator-produced.
	SignalTypeTemplatedUsername
	// SignalTypeBannedAvatar fires when the avatar is on the blocklist.
	SignalTypeBannedAvatar
	// SignalTypeDuplicateCohort fires for members of a creation/join cohort.
	SignalTypeDuplicateCohort
)
