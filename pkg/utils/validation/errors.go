package validation

import (
	"errors"
	"net/mail"
	"strings"
)

// ValidationError bir alanın geçersiz olduğunu belirtir
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func New(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError err zincirinde ValidationError olup olmadığını kontrol eder
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Required boş (veya sadece boşluk) alanlar için hata döner
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(field, field+" is required")
	}
	return nil
}

func Email(field, value string) error {
	if err := Required(field, value); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return New(field, "must be a valid email address")
	}
	return nil
}

// Each ilk hatayı döner
func Each(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}
