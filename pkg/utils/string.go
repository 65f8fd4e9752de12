package utils

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "..."

// TruncateRunes shortens s to at most limit runes, ending with an ellipsis when cut.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= len(ellipsis) {
		return string([]rune(s)[:limit])
	}

	return string([]rune(s)[:limit-len(ellipsis)]) + ellipsis
}

// JoinLimited joins lines with sep, dropping trailing lines that would exceed limit runes.
// The number of dropped lines is returned.
func JoinLimited(lines []string, sep string, limit int) (string, int) {
	var b strings.Builder
	size := 0

	for i, line := range lines {
		add := utf8.RuneCountInString(line)
		if i > 0 {
			add += utf8.RuneCountInString(sep)
		}
		if size+add > limit {
			return b.String(), len(lines) - i
		}

		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(line)
		size += add
	}

	return b.String(), 0
}
