package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

var ErrInvalidUUID = errors.New("invalid UUID")

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Names: letters in any script, spaces, hyphens, apostrophes and "&" (couples).
var nameRe = regexp.MustCompile(`^[\p{L}\s\-'&.]+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// IsValidPassword requires at least 8 characters with a letter, a digit and a symbol.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

func IsValidFullname(fullname string) bool {
	return strings.TrimSpace(fullname) != "" && nameRe.MatchString(fullname)
}

// ParseUUIDs parses every id; the first malformed one fails the whole list.
func ParseUUIDs(ids []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(ids))
	for _, s := range ids {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			return nil, ErrInvalidUUID
		}
		out = append(out, id)
	}
	return out, nil
}
