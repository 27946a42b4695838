package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewMissingFields("title", "year")
	assert.Equal(t, "Missing required fields: title, year", err.Error())
	assert.True(t, IsValidation(err))
	assert.True(t, IsValidation(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsNotFound(err))

	err = NewValidation("invalid status %q", "done")
	assert.Equal(t, `invalid status "done"`, err.Error())
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("project", "my-app")
	assert.Equal(t, `project "my-app" not found`, err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
}

func TestStoreUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreUnavailable("postgres", cause)

	assert.True(t, IsStoreUnavailable(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "postgres store unavailable")
	assert.Nil(t, NewStoreUnavailable("postgres", nil))
}

func TestContentValidationError(t *testing.T) {
	err := &ContentValidationError{Source: "profile.yaml", Field: "profile.email", Constraint: "email"}
	assert.Equal(t, "content profile.yaml: field profile.email must satisfy email", err.Error())

	parse := errors.New("yaml: line 3")
	err = &ContentValidationError{Source: "skills.yaml", Err: parse}
	assert.Equal(t, "content skills.yaml: yaml: line 3", err.Error())
	assert.ErrorIs(t, err, parse)
}
