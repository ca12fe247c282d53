package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindInvalidFileType ErrorKind = "invalid_file_type"
	KindFileTooLarge    ErrorKind = "file_too_large"
	KindBadRequest      ErrorKind = "bad_request"
	KindValidation      ErrorKind = "validation"
	KindProcessing      ErrorKind = "processing"
	KindInternal        ErrorKind = "internal"
)

// InternalMessage is the only detail ever shown for unexpected failures
const InternalMessage = "Internal server error"

// APIError represents a structured API error response
type APIError struct {
	Kind   ErrorKind `json:"-"`
	Detail string    `json:"detail"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Detail
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidFileType, KindFileTooLarge, KindBadRequest:
		return http.StatusBadRequest
	case KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// NewInvalidFileTypeError creates a disallowed extension error
func NewInvalidFileTypeError(detail string) *APIError {
	return &APIError{Kind: KindInvalidFileType, Detail: detail}
}

// NewFileTooLargeError creates an oversized upload error
func NewFileTooLargeError(detail string) *APIError {
	return &APIError{Kind: KindFileTooLarge, Detail: detail}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(detail string) *APIError {
	return &APIError{Kind: KindBadRequest, Detail: detail}
}

// NewValidationError creates a validation error
func NewValidationError(detail string) *APIError {
	return &APIError{Kind: KindValidation, Detail: detail}
}

// NewProcessingError wraps a model or I/O failure
func NewProcessingError(err error) *APIError {
	return &APIError{
		Kind:   KindProcessing,
		Detail: fmt.Sprintf("Error processing audio: %v", err),
	}
}

// NewInternalError creates the generic internal server error
func NewInternalError() *APIError {
	return &APIError{Kind: KindInternal, Detail: InternalMessage}
}
