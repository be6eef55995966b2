package utils

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// validate is the shared struct validator used for request payloads.
var validate = validator.New()

// ValidateStruct runs tag-based validation on a request payload.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateEmail checks format and structure of an email address and returns
// the normalized (lowercased) form.
func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("email must not be empty")
	}
	if len(email) > 254 {
		return "", fmt.Errorf("email too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", fmt.Errorf("invalid email format")
	}

	parts := strings.Split(addr.Address, "@")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid email structure")
	}
	local, domain := parts[0], parts[1]

	if len(local) == 0 || len(local) > 64 {
		return "", fmt.Errorf("invalid email local part")
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.Contains(domain, "..") || !strings.Contains(domain, ".") {
		return "", fmt.Errorf("invalid email domain")
	}

	return strings.ToLower(addr.Address), nil
}

// ValidatePhone parses a phone number, defaulting to the Philippines when no
// country prefix is given, and returns the E.164 form.
func ValidatePhone(phone string) (string, error) {
	cleaned := strings.TrimSpace(phone)
	if cleaned == "" {
		return "", fmt.Errorf("phone must not be empty")
	}

	num, err := phonenumbers.Parse(cleaned, "PH")
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number: %s", phone)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
