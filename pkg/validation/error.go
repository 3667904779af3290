package validation

import "errors"

// Error reports user input that was rejected before any state changed.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// IsValidation reports whether err (or anything it wraps) is a *Error.
func IsValidation(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}
