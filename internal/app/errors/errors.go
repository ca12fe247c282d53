package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the analysis pipeline
var (
	// Upload errors (client side)
	ErrInvalidFileType = New("invalid file type")
	ErrFileTooLarge    = New("file too large")
	ErrMissingFile     = New("no file uploaded")

	// Model and I/O failures
	ErrProcessing    = New("processing failed")
	ErrEmptyResponse = New("empty model response")

	// Configuration errors
	ErrInvalidConfig = New("invalid configuration")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Message returns the message without the cause chain.
func (e *Error) Message() string {
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Detailed attaches a user-facing message to a sentinel. The sentinel stays
// matchable with errors.Is and Error() returns only the message.
func Detailed(sentinel *Error, message string) error {
	return &detailed{sentinel: sentinel, message: message}
}

type detailed struct {
	sentinel *Error
	message  string
}

func (d *detailed) Error() string { return d.message }

func (d *detailed) Unwrap() error { return d.sentinel }

// Processing marks err as a model or I/O failure.
func Processing(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrProcessing) {
		return err
	}
	return &processing{cause: err}
}

type processing struct {
	cause error
}

func (p *processing) Error() string { return p.cause.Error() }

func (p *processing) Unwrap() []error { return []error{ErrProcessing, p.cause} }

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// IsClientError reports whether err was caused by the uploaded request itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidFileType) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrMissingFile)
}
