// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrTokenInvalid    = errors.New("token invalid")
	ErrTokenExpired    = errors.New("token expired")
	ErrStorageDisabled = errors.New("object storage not configured")
)

// FieldError is a single rule violation reported to the client.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
	Fields     []FieldError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: status,
		Code:       code,
	}
}

// The same client message is used whether the credential was missing,
// invalid, or the role was not permitted.
func UnauthorizedError() *AppError {
	return NewAppError(
		ErrUnauthorized,
		"Unauthorized",
		http.StatusUnauthorized,
		"UNAUTHORIZED",
	)
}

func ValidationError(fields []FieldError) *AppError {
	appErr := NewAppError(
		ErrInvalidInput,
		"Validation failed",
		http.StatusBadRequest,
		"VALIDATION_ERROR",
	)
	appErr.Fields = fields
	return appErr
}

func InvalidBodyError() *AppError {
	return NewAppError(
		ErrInvalidInput,
		"Invalid request body",
		http.StatusBadRequest,
		"INVALID_BODY",
	)
}

func ConflictError(message string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		message,
		http.StatusBadRequest,
		"CONFLICT",
	)
}

func InvalidCredentialsError() *AppError {
	return NewAppError(
		ErrUnauthorized,
		"Invalid credentials",
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
	)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		resource+" not found",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func InternalError(err error, message string) *AppError {
	return NewAppError(
		err,
		message,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
	)
}
