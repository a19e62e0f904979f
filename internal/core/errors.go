// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenRevoked = errors.New("token revoked")

	// ErrStorage marks failures of the backing key-value store, kept
	// distinct from domain validation errors so callers never confuse
	// "feature doesn't apply" with "storage broke".
	ErrStorage = errors.New("storage failure")
)

type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func BadRequestError(message string) *AppError {
	return NewAppError("BAD_REQUEST", message, http.StatusBadRequest)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError("UNAUTHORIZED", message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError("FORBIDDEN", message, http.StatusForbidden)
}

func NotFoundError(resource string) *AppError {
	return NewAppError("NOT_FOUND", resource+" not found", http.StatusNotFound)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		"DUPLICATE",
		field+" already exists",
		http.StatusConflict,
	)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		"TOKEN_EXPIRED",
		"token has expired",
		http.StatusUnauthorized,
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		"TOKEN_INVALID",
		"token is invalid",
		http.StatusUnauthorized,
	)
}

func TokenRevokedError() *AppError {
	return NewAppError(
		"TOKEN_REVOKED",
		"token has been revoked",
		http.StatusUnauthorized,
	)
}

func StorageUnavailableError() *AppError {
	return NewAppError(
		"STORAGE_UNAVAILABLE",
		"persistent store is unavailable",
		http.StatusServiceUnavailable,
	)
}
