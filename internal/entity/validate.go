package entity

import (
	"regexp"
	"strings"
)

// FieldError describes a single failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks the syntactic shape of an email address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// ValidateNewUser checks every sign-up field and reports all failures.
func ValidateNewUser(name, email, password, confirm string) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Please provide the name"})
	}

	switch {
	case strings.TrimSpace(email) == "":
		errs = append(errs, FieldError{Field: "email", Message: "Please provide the email"})
	case !IsValidEmail(email):
		errs = append(errs, FieldError{Field: "email", Message: "Please provide a valid email"})
	}

	errs = append(errs, ValidatePassword(password, confirm)...)
	return errs
}

// ValidatePassword checks a password and its confirmation. The confirmation
// value is compared before hashing and never persisted.
func ValidatePassword(password, confirm string) []FieldError {
	var errs []FieldError

	switch {
	case strings.TrimSpace(password) == "":
		errs = append(errs, FieldError{Field: "password", Message: "Please provide the password"})
	case len(password) < minPasswordLength:
		errs = append(errs, FieldError{Field: "password", Message: "Password must include 8 characters minimum."})
	}

	if strings.TrimSpace(confirm) == "" {
		errs = append(errs, FieldError{Field: "confirmPassword", Message: "Please provide the confirm password"})
	} else if password != confirm {
		errs = append(errs, FieldError{Field: "confirmPassword", Message: "Password and Confirm Password does not match."})
	}

	return errs
}

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
