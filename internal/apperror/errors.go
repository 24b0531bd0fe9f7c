// Package apperror holds the domain error values shared by services and
// handlers. Handlers map them to responses with errors.Is and errors.As.
package apperror

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not learn which one happened.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrSelfFollow = errors.New("you cannot follow yourself")

	ErrUsernameTaken = &ConflictError{Field: "username", Message: "username is already taken"}
	ErrEmailTaken    = &ConflictError{Field: "email", Message: "email is already in use"}
)

type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Resource string
	Key      string
}

func NewNotFound(resource, key string) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// RateLimitError reports a cooldown that has not elapsed yet.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry in %s", e.RetryAfter.Round(time.Second))
}
