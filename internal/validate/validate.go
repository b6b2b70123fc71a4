// Package validate provides input validation helpers for the LavaFix CLI.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/alexgomez/lavafix/internal/errors"
)

const (
	// MaxNameLength is the maximum length for a client name.
	MaxNameLength = 128
	// MaxPhoneLength is the maximum length for a phone number.
	MaxPhoneLength = 24
	// MaxNoteLength is the maximum length for a payment note.
	MaxNoteLength = 4096
)

// phoneRegex accepts digits with optional spaces, dashes, plus and parens.
var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ()-]*$`)

// ClientName validates a client display name.
func ClientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return errors.NewUserErrorWithField("name", name,
			"Client name too long",
			"Client names must be 128 characters or fewer")
	}
	return nil
}

// Phone validates a phone number. Required selects between the primary
// phone, which must be present, and the optional secondary one.
func Phone(phone string, required bool) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		if required {
			return errors.ErrPhoneRequired
		}
		return nil
	}
	if len(phone) > MaxPhoneLength {
		return errors.NewUserErrorWithField("phone", phone,
			"Phone number too long",
			"Phone numbers must be 24 characters or fewer")
	}
	if !phoneRegex.MatchString(phone) {
		return errors.NewUserErrorWithField("phone", phone,
			"Invalid phone number",
			"Use digits, optionally with spaces, dashes or a leading +")
	}
	return nil
}

// Amount validates a monetary amount. Zero is allowed and means "use the
// default"; negative amounts are rejected.
func Amount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.NewUserErrorWithField("amount", amount.String(),
			"Amount cannot be negative",
			"Provide a positive monthly amount, e.g. 150")
	}
	return nil
}

// Note validates a payment note.
func Note(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return errors.NewUserError(
			"Note too long",
			"Notes must be 4096 characters or fewer")
	}
	return nil
}
