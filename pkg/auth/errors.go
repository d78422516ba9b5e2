package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateEmail is returned when registering an email that already
	// has an account. The credential store's unique index is the source of
	// truth, so exactly one of two concurrent registrations gets this error.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUserNotFound is returned by credential store lookups on a miss.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned on a password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers bad signature, malformed token, and expiry.
	// The cases are deliberately indistinguishable to callers.
	ErrInvalidToken = errors.New("invalid token")

	// ErrRevocationUnavailable is returned when the revocation store cannot
	// be reached. Callers must treat it as a rejection, never as "not
	// revoked".
	ErrRevocationUnavailable = errors.New("revocation store unavailable")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationError aggregates per-field input failures. It is produced
// before any store access happens.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
