package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeBadStatus  ErrorType = "bad_status"
	ErrorTypeFilesystem ErrorType = "filesystem"
	ErrorTypeParsing    ErrorType = "parsing"
	ErrorTypeUnexpected ErrorType = "unexpected"
)

// Error represents a pipeline error with type information
type Error struct {
	Type    ErrorType
	Message string
	URL     string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Type == ErrorTypeBadStatus {
		return fmt.Sprintf("HTTP %d: %s", e.Code, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Type, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a typed error without a cause
func New(t ErrorType, message string) *Error {
	return &Error{Type: t, Message: message}
}

// Wrap creates a typed error around a cause
func Wrap(t ErrorType, err error, message string) *Error {
	return &Error{Type: t, Message: message, Err: err}
}

// BadStatus creates an error for a non-200 HTTP response
func BadStatus(url string, code int) *Error {
	return &Error{
		Type:    ErrorTypeBadStatus,
		Message: fmt.Sprintf("unexpected status code for %s", url),
		URL:     url,
		Code:    code,
	}
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnexpected
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnexpected
}

// Is checks whether err carries the given error type
func Is(err error, t ErrorType) bool {
	if err == nil {
		return false
	}
	return TypeOf(err) == t
}

// IsFetchError reports whether err came from the HTTP layer (bad status or network)
func IsFetchError(err error) bool {
	switch TypeOf(err) {
	case ErrorTypeNetwork, ErrorTypeBadStatus:
		return true
	default:
		return false
	}
}
