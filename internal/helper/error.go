package helper

import (
	"errors"
	"net/http"
)

const (
	MsgNotFound             = "Not Found"
	MsgBadRequest           = "Bad Request"
	MsgUnauthorized         = "Unauthorized"
	MsgTransportFailure     = "Transport Failure"
	MsgUnsupportedOperation = "Unsupported Operation"
)

// CodeTransport marks failures that never reached the server, so no HTTP
// status code exists for them.
const CodeTransport = 0

type AppError struct {
	Code    int
	Message string

	// Fields holds per-field validation messages when the server returned a
	// structured validation failure.
	Fields map[string]string

	cause error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewBadRequestError(message string) *AppError {
	if message == "" {
		message = MsgBadRequest
	}
	return NewAppError(http.StatusBadRequest, message)
}

func NewNotFoundError(message string) *AppError {
	if message == "" {
		message = MsgNotFound
	}
	return NewAppError(http.StatusNotFound, message)
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = MsgUnauthorized
	}
	return NewAppError(http.StatusUnauthorized, message)
}

func NewValidationError(message string, fields map[string]string) *AppError {
	if message == "" {
		message = MsgBadRequest
	}
	err := NewAppError(http.StatusUnprocessableEntity, message)
	err.Fields = fields
	return err
}

func NewUnsupportedOperationError(message string) *AppError {
	if message == "" {
		message = MsgUnsupportedOperation
	}
	return NewAppError(http.StatusMethodNotAllowed, message)
}

func NewTransportError(cause error) *AppError {
	return &AppError{
		Code:    CodeTransport,
		Message: MsgTransportFailure,
		cause:   cause,
	}
}

func IsNotFound(err error) bool {
	return hasCode(err, http.StatusNotFound)
}

func IsValidation(err error) bool {
	return hasCode(err, http.StatusBadRequest) || hasCode(err, http.StatusUnprocessableEntity)
}

func IsUnsupported(err error) bool {
	return hasCode(err, http.StatusMethodNotAllowed)
}

func IsTransport(err error) bool {
	return hasCode(err, CodeTransport)
}

func hasCode(err error, code int) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}
