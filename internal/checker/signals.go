package checker

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/robalyx/airlock/internal/member"
	"github.com/robalyx/airlock/internal/member/enum"
)

// templatePattern matches handles alternating letter and digit that start and end with a letter.
var templatePattern = regexp.MustCompile(`^(?:[A-Za-z][0-9])+[A-Za-z]$`)

// IsNewAccount reports whether the account was created less than maxAge before now.
// A record without a creation instant is never considered new.
func IsNewAccount(record *member.Record, now time.Time, maxAge time.Duration) bool {
	if record.CreatedAt.IsZero() {
		return false
	}

	return now.Sub(record.CreatedAt) < maxAge
}

// IsRecentJoin reports whether the member joined less than maxAge before now.
// A record without a join instant is never considered a recent join.
func IsRecentJoin(record *member.Record, now time.Time, maxAge time.Duration) bool {
	if !record.HasJoinTime() {
		return false
	}

	return now.Sub(*record.JoinedAt) < maxAge
}

// HasNoAvatar reports whether the member still uses the default avatar.
func HasNoAvatar(record *member.Record) bool {
	return !record.HasAvatar()
}

// MatchesUsernamePattern reports whether the username has the exact pattern length
// and alternates letter and digit, ending in a letter.
func MatchesUsernamePattern(username string) bool {
	return utf8.RuneCountInString(username) == PatternTemplateLength && templatePattern.MatchString(username)
}

// IsTemplatedUsername reports whether the username looks generator-produced.
// Pattern-length handles must match the letter-digit pattern on their own, while
// short-length handles only count when the account also has no avatar and joined recently.
func IsTemplatedUsername(record *member.Record, now time.Time, cfg Config) bool {
	if utf8.RuneCountInString(record.Username) == ShortTemplateLength {
		return HasNoAvatar(record) && IsRecentJoin(record, now, cfg.RecentJoinAge)
	}

	return MatchesUsernamePattern(record.Username)
}

// extractSignals evaluates every per-member extractor and appends the reasons that fire.
func extractSignals(record *member.Record, now time.Time, cfg Config, blocklist *Blocklist, reasons *member.Reasons) {
	if IsNewAccount(record, now, cfg.NewAccountAge) {
		reasons.Add(enum.SignalTypeNewAccount,
			fmt.Sprintf("Account created %s ago", formatAge(now.Sub(record.CreatedAt))))
	}

	if IsRecentJoin(record, now, cfg.RecentJoinAge) {
		reasons.Add(enum.SignalTypeRecentJoin,
			fmt.Sprintf("Joined the server %s ago", formatAge(now.Sub(*record.JoinedAt))))
	}

	if HasNoAvatar(record) {
		reasons.Add(enum.SignalTypeNoAvatar, "Using the default avatar")
	}

	if IsTemplatedUsername(record, now, cfg) {
		if utf8.RuneCountInString(record.Username) == PatternTemplateLength {
			reasons.Add(enum.SignalTypeTemplatedUsername,
				fmt.Sprintf("Username %q matches the generated letter-digit pattern", record.Username))
		} else {
			reasons.Add(enum.SignalTypeTemplatedUsername,
				fmt.Sprintf("%d-character username with default avatar and recent join", ShortTemplateLength))
		}
	}

	if blocklist.Contains(record) {
		reasons.Add(enum.SignalTypeBannedAvatar, "Avatar matches a blocklisted asset")
	}
}

// formatAge renders a duration in whole days, falling back to hours for the first day.
func formatAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	days := int(d / (24 * time.Hour))
	switch {
	case days == 1:
		return "1 day"
	case days > 1:
		return fmt.Sprintf("%d days", days)
	}

	hours := int(d / time.Hour)
	if hours == 1 {
		return "1 hour"
	}

	return fmt.Sprintf("%d hours", hours)
}

// formatWindow renders a window interval in hours.
func formatWindow(d time.Duration) string {
	return fmt.Sprintf("%dh", int(d/time.Hour))
}
