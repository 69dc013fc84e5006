package validation

import (
	"errors"
	"strings"
	"unicode"
)

// ValidatePassword validates password strength
// Requires at least 8 characters mixing upper case, lower case and digits
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	// Maximum length: 72 bytes (bcrypt limitation)
	// bcrypt silently truncates passwords longer than 72 bytes
	if len(password) > 72 {
		return errors.New("password must not exceed 72 characters")
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return errors.New("password must contain upper case letters, lower case letters and numbers")
	}

	lowered := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "letmein", "abc123",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lowered, pattern) {
			return errors.New("password is too common, please choose a stronger one")
		}
	}

	return nil
}
