package errors

import (
	"errors"
	"net/http"
)

const unexpectedMessage = "An unexpected error occurred."

type Exception struct {
	Message    string
	StatusCode int

	base *Exception
}

func (e *Exception) Error() string {
	return e.Message
}

// Is lets a copy made by WithMessage still match its sentinel.
func (e *Exception) Is(target error) bool {
	return e.base != nil && target == e.base
}

// WithMessage returns a copy of e that reports msg instead of the default text.
func (e *Exception) WithMessage(msg string) *Exception {
	return &Exception{Message: msg, StatusCode: e.StatusCode, base: e}
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// Message returns the caller-facing text for err. Errors that are not an
// Exception never leak their text.
func Message(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return unexpectedMessage
}

func IsExpected(err error) bool {
	var appErr *Exception
	return errors.As(err, &appErr)
}
