package booking

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minNameLength  = 3
	minPhoneDigits = 10
	maxPhoneDigits = 11
)

// NormalizePhone keeps only the digits of a phone number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func validName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= minNameLength
}

func validPhone(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

// ValidateContact checks the client's name and phone.
func ValidateContact(name, phone string) error {
	if !validName(name) {
		return invalid(StepContact, "client_name", "too_short")
	}
	if !validPhone(phone) {
		return invalid(StepContact, "client_phone", "invalid")
	}
	return nil
}
