// Package validate checks user-supplied fields before they reach a store.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input validation limits to prevent abuse.
const (
	MaxUsernameLen = 30
	MaxPasswordLen = 72
	MaxNameLen     = 60
	MaxEmailLen    = 128
	MaxPostLen     = 2000
	MaxMessageLen  = 1000
	MaxTagLen      = 40
)

// Error is a validation failure naming the offending field.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// FieldOf returns the field named by a validation error, or "".
func FieldOf(err error) string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Field
	}
	return ""
}

// Field is one named input.
type Field struct {
	Name  string
	Value string
}

// F builds a Field.
func F(name, value string) Field {
	return Field{Name: name, Value: value}
}

// Required returns an error naming the first field whose value is blank.
func Required(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return &Error{Field: f.Name, Reason: "is required"}
		}
	}
	return nil
}

// String checks length and UTF-8 validity.
func String(value, field string, maxLen int) error {
	if !utf8.ValidString(value) {
		return &Error{Field: field, Reason: "contains invalid UTF-8"}
	}
	if utf8.RuneCountInString(value) > maxLen {
		return &Error{Field: field, Reason: fmt.Sprintf("too long (max %d characters)", maxLen)}
	}
	return nil
}

// Username checks username requirements.
func Username(username string) error {
	if err := String(username, "username", MaxUsernameLen); err != nil {
		return err
	}
	if len(username) < 2 {
		return &Error{Field: "username", Reason: "too short (minimum 2 characters)"}
	}
	for _, r := range username {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.') {
			return &Error{Field: "username", Reason: "contains invalid characters (use letters, numbers, _ - or .)"}
		}
	}
	return nil
}

// Password checks password length. The upper bound is in bytes, which is
// what bcrypt limits.
func Password(password string, minLen int) error {
	if err := String(password, "password", MaxPasswordLen); err != nil {
		return err
	}
	if len(password) > MaxPasswordLen {
		return &Error{Field: "password", Reason: fmt.Sprintf("too long (max %d bytes)", MaxPasswordLen)}
	}
	if len(password) < minLen {
		return &Error{Field: "password", Reason: fmt.Sprintf("must be at least %d characters long", minLen)}
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks basic email format.
func Email(email string) error {
	if err := String(email, "email", MaxEmailLen); err != nil {
		return err
	}
	if !emailPattern.MatchString(email) {
		return &Error{Field: "email", Reason: "invalid email format"}
	}
	return nil
}

// Message checks a chat message.
func Message(text string) error {
	if err := String(text, "message", MaxMessageLen); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return &Error{Field: "message", Reason: "cannot be empty"}
	}
	return nil
}

// Sanitize drops control characters other than newlines and tabs.
func Sanitize(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= 32 && r != 127 || r == '\n' || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
