// Package shared holds the error taxonomy common to the optimization
// pipeline: payload violations, solver failures, and nothing else —
// transport errors are plain wrapped errors at the adapter layer since by
// definition no response has been built yet when one occurs.
package shared

import (
	"fmt"
	"strings"
)

// ValidationError reports one violation detected while normalizing or
// validating a job payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates every violation detected for one payload, so
// a caller sees a complete diagnosis instead of the first failure.
type ValidationErrors struct {
	Errors []*ValidationError
}

// NewValidationErrors returns an empty aggregate ready for Add calls.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// Add records one violation.
func (e *ValidationErrors) Add(field, format string, args ...interface{}) {
	e.Errors = append(e.Errors, &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any violation was recorded.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// AsError returns e as an error if it holds any violations, else nil. This
// is the usual way to return a ValidationErrors from a function signature
// that returns plain error.
func (e *ValidationErrors) AsError() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

// SolverError wraps a failure in the modeling/solving stage: no backend
// available, a solver configuration or setup error, a build or extract
// failure, or a solve that ended without a usable solution (Stage names
// which of these steps failed).
type SolverError struct {
	Stage string
	Err   error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver error during %s: %v", e.Stage, e.Err)
}

func (e *SolverError) Unwrap() error {
	return e.Err
}
