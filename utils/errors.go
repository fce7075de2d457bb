// utils/errors.go
package utils

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorKind classifies application errors for HTTP mapping
type ErrorKind int

const (
	ErrValidation ErrorKind = iota
	ErrNotFound
	ErrDuplicate
	ErrAuth
	ErrInternal
)

// AppError is the typed error surfaced to callers. Validation errors are
// raised at the point of detection and mapped to 4xx responses; anything
// unexpected is wrapped as ErrInternal and logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to an HTTP status code
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrDuplicate:
		return http.StatusConflict
	case ErrAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func NewDuplicateError(message string) *AppError {
	return &AppError{Kind: ErrDuplicate, Message: message}
}

func NewAuthError(message string) *AppError {
	return &AppError{Kind: ErrAuth, Message: message}
}

func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: ErrInternal, Message: message, Err: err}
}

// FromMongoError translates driver errors into the taxonomy: a missing
// document becomes ErrNotFound, a unique-index violation ErrDuplicate.
func FromMongoError(err error, notFoundMsg, duplicateMsg string) *AppError {
	if err == mongo.ErrNoDocuments {
		return NewNotFoundError(notFoundMsg)
	}
	if mongo.IsDuplicateKeyError(err) {
		return NewDuplicateError(duplicateMsg)
	}
	return NewInternalError("database operation failed", err)
}
