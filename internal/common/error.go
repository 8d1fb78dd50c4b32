// Package common defines shared constants and sentinel errors used across
// client and server layers of matcheat. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Error categories.
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInternal          = errors.New("internal error")
	ErrStorageGateway    = errors.New("storage gateway error")

	// Access gate errors.
	ErrUnauthorized = errors.New("access denied")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// User-facing errors. Their message is returned to the caller as is,
// Unwrap yields the category.
var (
	ErrUserNotFound    = NewError(ErrNotFound, "User does not exist.")
	ErrEmailNotFound   = NewError(ErrNotFound, "This email does not exist.")
	ErrHomeNotFound    = NewError(ErrNotFound, "Home does not exist.")
	ErrEmailTaken      = NewError(ErrDuplicateKey, "Email already taken.")
	ErrHandleTaken     = NewError(ErrDuplicateKey, "Username not available.")
	ErrHomeNameTaken   = NewError(ErrDuplicateKey, "Home name not available.")
	ErrInvalidPassword = NewError(ErrInvalidCredential, "Invalid password.")
	ErrAlreadyInHome   = NewError(ErrDuplicateKey, "User already belongs to a home.")
)

// Error is an error with a caller-facing message and a category.
type Error struct {
	kind error
	msg  string
}

// NewError returns an Error of the given category.
func NewError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }
