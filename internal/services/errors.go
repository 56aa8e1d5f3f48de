package services

import (
	"errors"

	"go-echo-starwars/internal/repository"
)

const msgMissingFields = "Missing required fields"

// NotFoundError names the kind of record that does not exist.
type NotFoundError struct {
	Kind string
}

func (e *NotFoundError) Error() string { return e.Kind + " not found" }

func (e *NotFoundError) Unwrap() error { return repository.ErrNotFound }

// ConflictError reports a uniqueness violation.
type ConflictError struct {
	Kind string
}

func (e *ConflictError) Error() string { return e.Kind + " already exists" }

func (e *ConflictError) Unwrap() error { return repository.ErrConflict }

// ValidationError carries a message safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func missingFields() error {
	return &ValidationError{Message: msgMissingFields}
}

func emptyField(field string) error {
	return &ValidationError{Message: field + " must not be empty"}
}

// classify turns repository sentinels into errors naming kind.
func classify(kind string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return &NotFoundError{Kind: kind}
	case errors.Is(err, repository.ErrConflict):
		return &ConflictError{Kind: kind}
	case errors.Is(err, repository.ErrInvalidReference):
		return &ValidationError{Message: "Referenced record does not exist"}
	}
	return err
}
