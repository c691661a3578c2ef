package domain

import (
	"errors"
	"fmt"
)

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrStorage          = errors.New("screenshot storage failed")
	ErrAIService        = errors.New("ai service failed")
	ErrNotFound         = errors.New("not found")
)

// ValidationError is returned for malformed or incomplete input. Message is
// the client-facing text.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Missing required field: %s", field)}
}

func InvalidNumber(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Invalid %s. Must be a number", field)}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
