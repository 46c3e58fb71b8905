package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundWrapsSentinel(t *testing.T) {
	err := fmt.Errorf("load: %w", NotFound("Quotation"))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "load: Quotation not found", err.Error())
}

func TestConflictWrapsSentinel(t *testing.T) {
	err := &ConflictError{Field: "piNo", Message: `PI No "PI-1" already exists`}
	assert.True(t, errors.Is(err, ErrConflict))
	var target *ConflictError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, "piNo", target.Field)
}
