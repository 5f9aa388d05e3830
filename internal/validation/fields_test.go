package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "simple", value: "a@b.com", valid: true},
		{name: "dots and hyphens", value: "first.last-name@mail.example.org", valid: true},
		{name: "underscore", value: "user_1@x-y.io", valid: true},
		{name: "four letter tld", value: "a@b.info", valid: true},
		{name: "empty", value: "", valid: false},
		{name: "no at", value: "ab.com", valid: false},
		{name: "no domain label", value: "a@com", valid: false},
		{name: "tld too long", value: "a@b.museum", valid: false},
		{name: "tld too short", value: "a@b.c", valid: false},
		{name: "plus sign", value: "a+b@c.com", valid: false},
		{name: "space", value: "a b@c.com", valid: false},
		{name: "trailing newline", value: "a@b.com\n", valid: false},
		{name: "uppercase kept as is", value: "A@B.COM", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.value)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			assert.Equal(t, EmailMessage, err.Error())
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{name: "all classes", value: "abcdef1!", valid: true},
		{name: "long mixed", value: "Str0ng#Passw0rd", valid: true},
		{name: "every symbol", value: "a1@$!%*#?&", valid: true},
		{name: "too short", value: "ab1!", valid: false},
		{name: "seven chars", value: "abcde1!", valid: false},
		{name: "missing digit", value: "abcdefg!", valid: false},
		{name: "missing letter", value: "1234567!", valid: false},
		{name: "missing symbol", value: "abcdefg1", valid: false},
		{name: "symbol outside set", value: "abcdef1^", valid: false},
		{name: "whitespace", value: "abc def1!", valid: false},
		{name: "non ascii letter", value: "ábcdef1!", valid: false},
		{name: "empty", value: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.value)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			assert.Equal(t, PasswordMessage, err.Error())
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Empty(t, Message(nil))
	assert.Equal(t, EmailMessage, Message(ValidateEmail("nope")))
	assert.Equal(t, PasswordMessage, Message(ValidatePassword("nope")))
}
