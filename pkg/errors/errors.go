package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type crossing layer boundaries.
// Code is a business error code (not an HTTP status); Message is safe to
// show to clients; Err carries the internal cause and is never serialized.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap supports errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a business code and client-facing message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap converts a system error (database, redis, broker) into an internal
// AppError, hiding the cause from clients.
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// Business error codes.
// 4xxxx: client errors, 5xxxx: server errors. The middle digits group the
// error kind so HTTPStatus can map whole ranges.
const (
	// System errors (50000-50099)
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeCacheError    = 50002

	// Authentication / authorization (40100-40199)
	ErrCodeUnauthenticated = 40100
	ErrCodeInvalidToken    = 40101
	ErrCodeTokenExpired    = 40102
	ErrCodeInvalidPassword = 40103
	ErrCodeForbidden       = 40104

	// Missing resources (40400-40499)
	ErrCodeNotFound         = 40400
	ErrCodeUserNotFound     = 40401
	ErrCodeBookNotFound     = 40402
	ErrCodeReviewNotFound   = 40403
	ErrCodeFavoriteNotFound = 40404

	// Business rule violations (40000-40099)
	ErrCodeBusinessError  = 40000
	ErrCodeEmailDuplicate = 40003
	ErrCodeWeakPassword   = 40005
	ErrCodeConflict       = 40009

	// Validation (40900-40999)
	ErrCodeInvalidParams = 40900
	ErrCodeBindError     = 40901
)

// Predefined errors shared across domains.
var (
	ErrInternal      = New(ErrCodeInternal, "internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "database error")
	ErrCacheError    = New(ErrCodeCacheError, "cache service error")

	ErrUnauthenticated = New(ErrCodeUnauthenticated, "authentication required")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "invalid token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "token expired")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "wrong password")
	ErrForbidden       = New(ErrCodeForbidden, "permission denied")

	ErrUserNotFound = New(ErrCodeUserNotFound, "user not found")

	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "email already registered")
	ErrWeakPassword   = New(ErrCodeWeakPassword, "password too weak (8-20 chars, letters and digits)")

	ErrInvalidParams = New(ErrCodeInvalidParams, "invalid parameters")
	ErrBindError     = New(ErrCodeBindError, "malformed request body")
)

// HTTPStatus maps the business code to an HTTP status code.
// One mapping per error kind: the predecessor system returned 400 for some
// non-owner deletes and 403 for others; here Forbidden is always 403,
// a duplicate favorite is always 409 and a missing favorite is always 404.
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code == ErrCodeForbidden:
		return http.StatusForbidden
	case e.Code >= 40100 && e.Code < 40200:
		return http.StatusUnauthorized
	case e.Code >= 40400 && e.Code < 40500:
		return http.StatusNotFound
	case e.Code == ErrCodeConflict || e.Code == ErrCodeEmailDuplicate:
		return http.StatusConflict
	case e.Code >= 40000 && e.Code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsAppError reports whether err is (or wraps) an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, wrapping unknown errors as
// internal so nothing sensitive leaks to clients.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal server error")
}
