// Package apperror holds the descriptive errors shared by every domain:
// a missing row named by its entity and a business-key conflict.
package apperror

import "errors"

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// NotFoundError reports a missing or soft-deleted row.
type NotFoundError struct {
	Entity string
}

func NotFound(entity string) *NotFoundError { return &NotFoundError{Entity: entity} }

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a business key that is already taken. It is a
// client error: the request can succeed with a different value.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return ErrConflict }
