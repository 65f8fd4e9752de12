package checker

import (
	"net/url"
	"strings"

	"github.com/robalyx/airlock/internal/member"
)

// Blocklist is a static set of avatar hashes and URLs reused by known bad actors.
// A nil Blocklist contains nothing.
type Blocklist struct {
	entries map[string]struct{}
}

// NewBlocklist builds a blocklist from hashes or avatar URLs.
func NewBlocklist(entries []string) *Blocklist {
	b := &Blocklist{entries: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		if key := normalizeAvatar(entry); key != "" {
			b.entries[key] = struct{}{}
		}
	}

	return b
}

// Contains reports whether the member's avatar hash or URL is blocklisted.
func (b *Blocklist) Contains(record *member.Record) bool {
	if b == nil || len(b.entries) == 0 {
		return false
	}

	for _, candidate := range []string{record.AvatarHash, record.AvatarURL} {
		key := normalizeAvatar(candidate)
		if key == "" {
			continue
		}

		if _, ok := b.entries[key]; ok {
			return true
		}
	}

	return false
}

// Len returns the number of blocklisted entries.
func (b *Blocklist) Len() int {
	if b == nil {
		return 0
	}

	return len(b.entries)
}

// normalizeAvatar trims whitespace and drops URL query parameters such as the image size.
func normalizeAvatar(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if u, err := url.Parse(value); err == nil && u.Host != "" {
		u.RawQuery = ""
		u.Fragment = ""

		return u.String()
	}

	return value
}
