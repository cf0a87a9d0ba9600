package util

import (
	"strings"
	"unicode"
)

// MaxDisplayNameLength is the longest display name a seat can have
const MaxDisplayNameLength = 24

// CleanDisplayName trims the name, drops control characters and limits its length
// An empty string is returned if nothing printable is left
func CleanDisplayName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}

		return r
	}, strings.TrimSpace(name))

	runes := []rune(name)
	if len(runes) > MaxDisplayNameLength {
		runes = runes[:MaxDisplayNameLength]
	}

	return strings.TrimSpace(string(runes))
}
