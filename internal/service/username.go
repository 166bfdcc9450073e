package service

import (
	"unicode"
	"unicode/utf8"

	"github.com/set-night/lovematch/internal/config"
)

// ValidUsername reports whether s fits Telegram's username alphabet:
// at most 32 characters, each a letter, a number or an underscore.
func ValidUsername(s string) bool {
	if utf8.RuneCountInString(s) > config.MaxUsernameLen {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}
