package errors

import "net/http"

// Kind classifies a failure for the sync engine's error policy:
// validation errors never reach the network, auth errors surface a
// re-login prompt, network errors wait for the next poll.
type Kind string

const (
	KindValidation Kind = "validation"
	KindAuth       Kind = "auth"
	KindNetwork    Kind = "network"
	KindUpstream   Kind = "upstream"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

// AppError is a custom error type that includes an HTTP status code
type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewAppError creates a new AppError
func NewAppError(kind Kind, code int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Common errors
var (
	ErrInvalidRequest = NewAppError(KindValidation, http.StatusBadRequest, "Invalid request parameters")
	ErrUnauthorized   = NewAppError(KindAuth, http.StatusUnauthorized, "Unauthorized access")
	ErrForbidden      = NewAppError(KindAuth, http.StatusForbidden, "Access denied")
	ErrNotFound       = NewAppError(KindNotFound, http.StatusNotFound, "Resource not found")
	ErrInternalServer = NewAppError(KindInternal, http.StatusInternalServerError, "Internal server error")
)

// Helper functions to create specific errors
func Validation(msg string) *AppError {
	return NewAppError(KindValidation, http.StatusBadRequest, msg)
}

func Unauthorized(msg string) *AppError {
	return NewAppError(KindAuth, http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return NewAppError(KindAuth, http.StatusForbidden, msg)
}

func NotFound(msg string) *AppError {
	return NewAppError(KindNotFound, http.StatusNotFound, msg)
}

func Internal(msg string) *AppError {
	return NewAppError(KindInternal, http.StatusInternalServerError, msg)
}

// Network wraps a transport-level failure (request never completed or
// timed out). Code 0 means no HTTP status was received.
func Network(msg string, cause error) *AppError {
	return &AppError{Kind: KindNetwork, Code: 0, Message: msg, cause: cause}
}

// Upstream reports a non-2xx response from the Evaluaasi backend that is
// neither an auth rejection nor a validation error.
func Upstream(code int, msg string) *AppError {
	return NewAppError(KindUpstream, code, msg)
}

// KindOf extracts the Kind from any error; non-AppError values are
// treated as internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if ae, ok := err.(*AppError); ok {
		return ae.Kind
	}
	return KindInternal
}

func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
func IsNetwork(err error) bool    { return KindOf(err) == KindNetwork }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
