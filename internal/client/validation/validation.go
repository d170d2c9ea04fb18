// Package validation checks user input before it reaches the network.
//
// Every login and registration path calls into this package; a request is
// sent only for input that came back Valid.
package validation

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/natman/internal/client/models"
	"github.com/dmitrijs2005/natman/internal/common"
)

const maxAge = 150

// DefaultSurname fills in a missing surname when a full name has one word.
const DefaultSurname = "User"

var phonePattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// Result is either valid or invalid(Field, Reason).
type Result struct {
	Valid  bool
	Field  string
	Reason string
}

func valid() Result { return Result{Valid: true} }

func invalid(field, reason string) Result {
	return Result{Field: field, Reason: reason}
}

// Err converts an invalid result into a *common.ValidationError; it returns
// nil for a valid one.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &common.ValidationError{Field: r.Field, Reason: r.Reason}
}

// ValidateCredentials requires both fields to be non-blank.
func ValidateCredentials(username, password string) Result {
	if strings.TrimSpace(username) == "" {
		return invalid("username", "is required")
	}
	if password == "" {
		return invalid("password", "is required")
	}
	return valid()
}

// ValidateRegistration checks fields in form order and reports the first
// failure.
func ValidateRegistration(r models.Registration) Result {
	if res := ValidateCredentials(r.Username, r.Password); !res.Valid {
		return res
	}

	required := []struct {
		field, value string
	}{
		{"first_name", r.FirstName},
		{"surname", r.Surname},
		{"mail", r.Mail},
		{"phone_number", r.PhoneNumber},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return invalid(f.field, "is required")
		}
	}

	if r.Age <= 0 || r.Age > maxAge {
		return invalid("age", "must be between 1 and 150")
	}
	if _, err := mail.ParseAddress(r.Mail); err != nil {
		return invalid("mail", "is not a valid e-mail address")
	}
	if !phonePattern.MatchString(strings.ReplaceAll(r.PhoneNumber, " ", "")) {
		return invalid("phone_number", "must contain 6 to 15 digits")
	}
	return valid()
}

// SplitFullName splits "First Last Names" into the first word and the rest.
// A single word yields DefaultSurname as the surname.
func SplitFullName(name string) (first, surname string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", DefaultSurname
	}
	if len(parts) == 1 {
		return parts[0], DefaultSurname
	}
	return parts[0], strings.Join(parts[1:], " ")
}
