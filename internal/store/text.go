package store

import "strings"

// Ellipsis marks values that were cut down to their maximum length.
const Ellipsis = "..."

// Truncate returns s unchanged if it fits in max runes. Otherwise the
// result is exactly max runes long and ends in the ellipsis marker, with
// the first max-3 runes of s preserved.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	if max <= len(Ellipsis) {
		return string(runes[:max])
	}

	return string(runes[:max-len(Ellipsis)]) + Ellipsis
}

// ContainsFold reports whether substr is in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
