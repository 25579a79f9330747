package errors

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrUpstream       ErrorCode = "UPSTREAM_ERROR"
	ErrUpstreamAuth   ErrorCode = "UPSTREAM_AUTH"
	ErrConfigMissing  ErrorCode = "CONFIG_MISSING"
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrInternalServer ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError is the error type every service returns. UpstreamStatus carries
// the provider's HTTP status when the failure originated there (0 otherwise).
type AppError struct {
	Code           ErrorCode
	Message        string
	Err            error
	UpstreamStatus int
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewUpstreamError records a provider failure together with the status the
// provider answered with (0 when the request never completed).
func NewUpstreamError(message string, status int, err error) *AppError {
	return &AppError{Code: ErrUpstream, Message: message, Err: err, UpstreamStatus: status}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// AsAppError unwraps err to an *AppError, or wraps it as an internal error.
func AsAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return NewAppError(ErrInternalServer, err.Error(), err)
}
