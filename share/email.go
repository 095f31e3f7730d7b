package share

import (
	"fmt"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[\w\-.]+@[\w\-]+\.[a-z]{2,}$`)

// Email is a validated email address. The zero value is invalid; construct
// through NewEmail.
type Email struct {
	value string
}

// NewEmail validates raw against the address grammar and returns the value.
func NewEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, fmt.Errorf("invalid email address: %q", raw)
	}
	return Email{value: raw}, nil
}

// String returns the address text.
func (e Email) String() string { return e.value }

// IsZero reports whether e was never constructed through NewEmail.
func (e Email) IsZero() bool { return e.value == "" }
