package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of application error.
type ErrorCode string

const (
	// ErrCodeInvalidCredentials indicates a rejected email/password pair.
	ErrCodeInvalidCredentials ErrorCode = "invalid_credentials"
	// ErrCodeDuplicateEmail indicates registration with an already-used email.
	ErrCodeDuplicateEmail ErrorCode = "duplicate_email"
	// ErrCodeValidation indicates invalid input data.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeUnauthorized indicates a stale or invalid bearer token.
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	// ErrCodeInvalidResetToken indicates an invalid or expired password-reset token.
	ErrCodeInvalidResetToken ErrorCode = "invalid_or_expired_token"
	// ErrCodeWeakPassword indicates a password rejected by server policy.
	ErrCodeWeakPassword ErrorCode = "weak_password"
	// ErrCodeNetwork indicates a transport failure or timeout.
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeUnknown is the catch-all for unclassified failures.
	ErrCodeUnknown ErrorCode = "unknown"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message, safe to surface in the UI
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// InvalidCredentials creates a new InvalidCredentials error.
func InvalidCredentials(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidCredentials,
		Message: message,
	}
}

// DuplicateEmail creates a new DuplicateEmail error.
func DuplicateEmail(message string) *AppError {
	return &AppError{
		Code:    ErrCodeDuplicateEmail,
		Message: message,
	}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// ValidationField creates a new Validation error for a specific field.
func ValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthorized creates a new Unauthorized error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
	}
}

// InvalidResetToken creates a new InvalidResetToken error.
func InvalidResetToken(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidResetToken,
		Message: message,
	}
}

// WeakPassword creates a new WeakPassword error.
func WeakPassword(message string) *AppError {
	return &AppError{
		Code:    ErrCodeWeakPassword,
		Message: message,
	}
}

// Network creates a new Network error.
func Network(message string) *AppError {
	return &AppError{
		Code:    ErrCodeNetwork,
		Message: message,
	}
}

// Unknown creates a new Unknown error.
func Unknown(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnknown,
		Message: message,
	}
}

// Unknownf creates a new Unknown error with formatted message.
func Unknownf(format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeUnknown,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsInvalidCredentials checks if an error is an InvalidCredentials error.
func IsInvalidCredentials(err error) bool {
	return isCode(err, ErrCodeInvalidCredentials)
}

// IsDuplicateEmail checks if an error is a DuplicateEmail error.
func IsDuplicateEmail(err error) bool {
	return isCode(err, ErrCodeDuplicateEmail)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsUnauthorized checks if an error is an Unauthorized error.
func IsUnauthorized(err error) bool {
	return isCode(err, ErrCodeUnauthorized)
}

// IsInvalidResetToken checks if an error is an InvalidResetToken error.
func IsInvalidResetToken(err error) bool {
	return isCode(err, ErrCodeInvalidResetToken)
}

// IsWeakPassword checks if an error is a WeakPassword error.
func IsWeakPassword(err error) bool {
	return isCode(err, ErrCodeWeakPassword)
}

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool {
	return isCode(err, ErrCodeNetwork)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// UserMessage returns the user-safe message from an error.
// Raw transport errors never reach the UI; anything that is not an AppError
// collapses to a generic retry suggestion.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
