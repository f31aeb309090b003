package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorsAsErrorNilWhenEmpty(t *testing.T) {
	errs := NewValidationErrors()
	assert.Nil(t, errs.AsError())
}

func TestValidationErrorsAggregatesAll(t *testing.T) {
	errs := NewValidationErrors()
	errs.Add("materials", "must be a non-empty list")
	errs.Add("yields", "material '%s' not in materials", "gypsum")
	assert.True(t, errs.HasErrors())
	err := errs.AsError()
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "materials: must be a non-empty list")
	assert.Contains(t, err.Error(), "gypsum")
}

func TestSolverErrorUnwraps(t *testing.T) {
	inner := assert.AnError
	se := &SolverError{Stage: "backend_selection", Err: inner}
	assert.ErrorIs(t, se, inner)
}
