// Package apperror defines the error taxonomy shared by the content loader,
// the store adapters and the HTTP boundary.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports caller-supplied input that is malformed or incomplete.
type ValidationError struct {
	// Missing lists required fields that were absent or blank.
	Missing []string
	// Message is used when the problem is not a plain missing-field case.
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Missing required fields: " + strings.Join(e.Missing, ", ")
	}
	return e.Message
}

// NewValidation returns a ValidationError with a free-form message.
func NewValidation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NewMissingFields returns a ValidationError listing missing required fields.
func NewMissingFields(fields ...string) error {
	return &ValidationError{Missing: fields}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// NewNotFound returns a NotFoundError for entity identified by key.
func NewNotFound(entity, key string) error {
	return &NotFoundError{Entity: entity, Key: key}
}

// StoreUnavailableError wraps a failure of an underlying store.
type StoreUnavailableError struct {
	Store string
	Err   error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("%s store unavailable: %v", e.Store, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// NewStoreUnavailable wraps err as a StoreUnavailableError for store.
// A nil err yields nil.
func NewStoreUnavailable(store string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreUnavailableError{Store: store, Err: err}
}

// ContentValidationError reports a static content file that violates its schema.
// It is fatal at startup and never surfaced to HTTP callers.
type ContentValidationError struct {
	Source     string
	Field      string
	Constraint string
	Err        error
}

func (e *ContentValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("content %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("content %s: field %s must satisfy %s", e.Source, e.Field, e.Constraint)
}

func (e *ContentValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStoreUnavailable reports whether err is (or wraps) a StoreUnavailableError.
func IsStoreUnavailable(err error) bool {
	var su *StoreUnavailableError
	return errors.As(err, &su)
}
