package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"statcalc/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. Domain errors keep their
// taxonomy code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    GetCode(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// FromDomain converts any error into an AppError whose code reflects the
// domain taxonomy. The original error stays reachable through Unwrap.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: GetCode(err), Message: err.Error(), Cause: err}
}

// GetCode returns the error code for AppErrors and domain errors, otherwise
// INTERNAL_ERROR
func GetCode(err error) string {
	var appErr *AppError
	switch {
	case err == nil:
		return ""
	case stderrors.As(err, &appErr):
		return appErr.Code
	case core.IsParseError(err):
		return CodeParseError
	case core.IsValidationError(err):
		return CodeValidationError
	case core.IsConfigurationError(err):
		return CodeConfigInvalid
	case core.IsComputationError(err):
		return CodeComputationError
	}
	return CodeInternalError
}

// HTTPStatus maps an error code to a response status
func HTTPStatus(code string) int {
	switch code {
	case CodeParseError, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeValidationError, CodeConfigInvalid, CodeComputationError:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

// Predefined error codes
const (
	CodeParseError        = "PARSE_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeComputationError  = "COMPUTATION_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeNotFound          = "NOT_FOUND"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeIOError           = "IO_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func UnsupportedFormat(format string) *AppError {
	return New(CodeUnsupportedFormat, fmt.Sprintf("unsupported file format %q", format))
}

func IOError(message string, cause error) *AppError {
	return &AppError{Code: CodeIOError, Message: message, Cause: cause}
}
