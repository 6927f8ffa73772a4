package services

import "errors"

// Sentinel errors for explicit error handling
// These errors allow callers to distinguish between different failure modes
// using errors.Is() instead of string matching

var (
	// ErrNotLoggedIn indicates an action needs a reporter session
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNotAdmin indicates an action needs a moderator session
	ErrNotAdmin = errors.New("admin session required")
)

// ValidationError is a form problem detected before any request is issued.
// Message is shown to the user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err carries a form validation message
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
