// Package apperror defines the typed error carried from the service layer to
// HTTP handlers. Each error maps a machine-readable code to an HTTP status.
package apperror

import (
	"errors"
	"fmt"
)

type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(statusCode int, code, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

func Newf(statusCode int, code, format string, args ...any) *Error {
	return New(statusCode, code, fmt.Sprintf(format, args...))
}

// FromError extracts an *Error from err's chain, if present.
func FromError(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given error code.
func HasCode(err error, code string) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Code == code
}
