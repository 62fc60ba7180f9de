package session

import (
	"regexp"
	"strings"

	"github.com/seongmin-dev/OnlineJudgeClient/internal/apperr"
)

// usernamePattern: starts with a letter, 6 to 16 alphanumeric characters
// total.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]{5,15}$`)

const passwordSpecials = "@$!%*?&~"

// ValidateUsername checks the account-name format before any network call.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return &apperr.ValidationError{
			Field:   "username",
			Message: "must be 6-16 characters, letters and digits only, starting with a letter",
		}
	}
	return nil
}

// ValidatePassword enforces the judge's password policy: 10 to 32 characters
// drawn from letters, digits and the special set, with at least one
// lowercase, one uppercase, one digit and one special character.
func ValidatePassword(password string) error {
	reject := func(msg string) error {
		return &apperr.ValidationError{Field: "password", Message: msg}
	}

	if len(password) < 10 || len(password) > 32 {
		return reject("must be 10-32 characters")
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return reject("contains a character outside letters, digits and " + passwordSpecials)
		}
	}

	if !lower || !upper || !digit || !special {
		return reject("needs at least one lowercase, one uppercase, one digit and one of " + passwordSpecials)
	}
	return nil
}
