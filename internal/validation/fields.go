// Package validation holds the input checks shared by the quizzer client:
// the registration field rules and declarative struct validation for wire
// schemas and form drafts.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

const (
	EmailMessage    = "Please enter a valid email address."
	PasswordMessage = "Please enter a valid password."

	passwordMinLen  = 8
	passwordSymbols = "@$!%*#?&"
)

// ErrInvalid is matched by every field-level validation error.
var ErrInvalid = errors.New("invalid value")

var emailRegex = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)

// Error is a field-level validation failure carrying the user-facing message.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return target == ErrInvalid }

// ValidateEmail returns nil when value looks like an email address and the
// fixed email message otherwise. No normalization is applied.
func ValidateEmail(value string) error {
	if emailRegex.MatchString(value) {
		return nil
	}
	return &Error{Field: "email", Message: EmailMessage}
}

// ValidatePassword returns nil when value has at least 8 characters, uses
// only letters, digits and the symbols @$!%*#?&, and contains at least one
// of each class. Any other value gets the fixed password message.
func ValidatePassword(value string) error {
	if len(value) < passwordMinLen {
		return &Error{Field: "password", Message: PasswordMessage}
	}

	var letter, digit, symbol bool
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return &Error{Field: "password", Message: PasswordMessage}
		}
	}
	if !letter || !digit || !symbol {
		return &Error{Field: "password", Message: PasswordMessage}
	}
	return nil
}

// Message returns the user-facing text of a validation error, or "" for nil.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
