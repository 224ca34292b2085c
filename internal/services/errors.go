package services

import "errors"

// Domain error taxonomy. The transport layer maps these to HTTP
// statuses; the services never log them except for conflict
// exhaustion.

// ValidationError is malformed or constraint-violating input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError is a reference to a goal or account that does not
// exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// AuthorizationError is an operation on a goal the caller does not
// own. Its message is fixed so it cannot leak whose goal it is.
type AuthorizationError struct{}

func (e *AuthorizationError) Error() string { return "not authorized to access this goal" }

// ConflictError is an unresolvable write race, surfaced only after the
// local retries are exhausted.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ErrInvalidCredentials covers both a wrong password and an unknown
// email so login failures are indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrAccountNotVerified rejects logins before email verification.
var ErrAccountNotVerified = errors.New("account email is not verified")
