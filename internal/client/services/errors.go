package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnreachable        = errors.New("record store unreachable")
	ErrLoginFailed        = errors.New("login failed")
	ErrSignupFailed       = errors.New("signup failed")

	// ErrSessionExpired means the store no longer accepts the session's
	// credentials, or there is no session at all.
	ErrSessionExpired = errors.New("session expired")

	ErrInvalidRecord = errors.New("invalid medicine record")
)

// SignupRejectedError carries the store's reason for refusing a signup,
// e.g. "Username already exists".
type SignupRejectedError struct {
	Message string
}

func (e *SignupRejectedError) Error() string { return e.Message }

// RequestFailedError is any inventory call failure other than an expired
// session.
type RequestFailedError struct {
	Detail string
	Err    error
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed: %s", e.Detail)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }
