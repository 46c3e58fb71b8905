package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorReportsAllViolations(t *testing.T) {
	var c Collector
	c.Required("portName", " ")
	c.Required("country", "IN")
	c.RequiredPtr("specification", nil)

	err := c.Err()
	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Violations, 2)
	assert.Equal(t, "portName", vErr.Violations[0].Field)
	assert.Equal(t, CodeRequired, vErr.Violations[1].Code)
	assert.Equal(t, "portName is required; specification is required", err.Error())
}

func TestCollectorEmpty(t *testing.T) {
	var c Collector
	assert.NoError(t, c.Err())
}
