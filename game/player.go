package game

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrNameTooShort = errors.New("player name must be at least 2 characters")
	ErrNameTooLong  = errors.New("player name must be at most 64 characters")
)

// ValidatePlayerName trims name and checks its length against the limits the
// leaderboard service accepts.
func ValidatePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	if n < MinNameLength {
		return "", ErrNameTooShort
	}
	if n > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
