package errors

import "net/http"

// Kind classifies an error for API clients.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindValidation   Kind = "validation"
	KindRateLimit    Kind = "rate_limit"
	KindInternal     Kind = "internal"
)

// AppError is a typed error that carries an HTTP status code and a client-facing kind.
type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"-"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(kind Kind, code int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

// Helper constructors for the common kinds
func BadRequest(msg string) *AppError {
	return New(KindValidation, http.StatusBadRequest, msg)
}

func NotFound(msg string) *AppError {
	return New(KindNotFound, http.StatusNotFound, msg)
}

func Conflict(msg string) *AppError {
	return New(KindConflict, http.StatusConflict, msg)
}

func Unauthorized(msg string) *AppError {
	return New(KindUnauthorized, http.StatusUnauthorized, msg)
}

func Forbidden(msg string) *AppError {
	return New(KindForbidden, http.StatusForbidden, msg)
}

func Internal(msg string) *AppError {
	return New(KindInternal, http.StatusInternalServerError, msg)
}
