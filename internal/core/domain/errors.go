package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("bad credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrAdminNotFound      = errors.New("administrator not found")
	ErrAdminExists        = errors.New("administrator already exists")
)

// ValidationError is returned for malformed or missing input. Message is safe
// to show to API callers as-is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

var (
	ErrCredentialsRequired = &ValidationError{Message: "Email and password required"}
	ErrLeadFieldsRequired  = &ValidationError{Message: "Name and email are required"}
	ErrInvalidStatus       = &ValidationError{Message: "Invalid status"}
	ErrNoteTextRequired    = &ValidationError{Message: "Note text required"}
)

// StartupError marks a failure that must stop the process before it serves
// any traffic.
type StartupError struct {
	Stage string
	Err   error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup: %s: %v", e.Stage, e.Err)
}

func (e *StartupError) Unwrap() error { return e.Err }
