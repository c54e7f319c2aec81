package cryptoalg

import (
	"errors"
	"fmt"
)

// ValidationError reports bad caller input. Its message is short and meant to
// be shown to the user as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError formats a ValidationError
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ErrSigningExhausted is returned when every DSA signing attempt produced r = 0 or s = 0.
var ErrSigningExhausted = errors.New("dsa signing exhausted its attempt budget")

// Frequently used validation messages
const (
	MsgMissingText = "Missing text"
	MsgMissingKey  = "Missing key"
)
