package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable signals that the catalog could not be loaded at startup.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrEmptyCorpus signals that no indexable documents survived loading.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrInvalidPost signals a post missing a required field.
	ErrInvalidPost = errors.New("invalid post")
	// ErrStorage signals a post store I/O failure.
	ErrStorage = errors.New("storage error")
)

// FieldError wraps ErrInvalidPost with the offending field name.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidPost.Error(), e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidPost }

// NewFieldError creates a post validation error for a single field.
func NewFieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}
