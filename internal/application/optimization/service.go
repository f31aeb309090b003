// Package optimization wires the normalize, validate, build, solve, and
// extract stages into the single entry point the queue worker and the CLI
// both call.
package optimization

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andrescamacho/mission-optimizer-core/internal/application/optimization/normalize"
	"github.com/andrescamacho/mission-optimizer-core/internal/application/optimization/validate"
	"github.com/andrescamacho/mission-optimizer-core/internal/domain/optimization"
	"github.com/andrescamacho/mission-optimizer-core/internal/domain/shared"
)

// Service runs one job payload through the full pipeline against whatever
// optimization.Engine it was built with.
type Service struct {
	engine optimization.Engine
	log    zerolog.Logger
}

// NewService builds a Service bound to the given engine and logger. The
// logger is a value held by the struct, never a package global, so a
// worker running many jobs concurrently can attach per-job fields without
// data races.
func NewService(engine optimization.Engine, log zerolog.Logger) *Service {
	return &Service{engine: engine, log: log}
}

// Solve runs one job end to end: normalize the raw payload, validate the
// normalized record, build the model, solve it, and extract the result
// document. The returned error is always either a *shared.ValidationErrors
// (the payload itself is malformed) or a *shared.SolverError (the payload
// was fine but the model could not be built or solved); callers that need
// to choose an error-response shape can type-switch on it.
func (s *Service) Solve(ctx context.Context, raw map[string]interface{}) (*optimization.Result, error) {
	data, err := normalize.Normalize(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("payload normalization failed")
		return nil, toValidationErrors(err)
	}

	if err := validate.Validate(data); err != nil {
		s.log.Warn().Err(err).Msg("payload validation failed")
		return nil, toValidationErrors(err)
	}

	model, err := s.engine.Build(data)
	if err != nil {
		s.log.Error().Err(err).Msg("model construction failed")
		return nil, &shared.SolverError{Stage: "build", Err: err}
	}

	solution, err := s.engine.Solve(ctx, model)
	if err != nil {
		s.log.Error().Err(err).Msg("solve failed")
		return nil, err
	}

	result, err := s.engine.Extract(data, model, solution)
	if err != nil {
		s.log.Error().Err(err).Msg("result extraction failed")
		return nil, &shared.SolverError{Stage: "extract", Err: err}
	}

	// A solver that terminates without a usable solution (infeasible,
	// unbounded) still produces a result document, but it carries no
	// schedule worth reporting as success; surface it as a solve failure
	// so the caller's success/error branch matches the solver's own verdict.
	if result.SolverStatus.Status != "ok" {
		s.log.Warn().Str("termination", result.SolverStatus.TerminationCondition).Msg("no usable solution")
		return nil, &shared.SolverError{
			Stage: "solve",
			Err:   fmt.Errorf("no usable solution: %s", result.SolverStatus.TerminationCondition),
		}
	}

	s.log.Info().
		Str("status", result.SolverStatus.Status).
		Str("termination", result.SolverStatus.TerminationCondition).
		Float64("objective_value", result.Summary.ObjectiveValue).
		Msg("job solved")

	return result, nil
}

// toValidationErrors wraps a plain normalize/validate error into the
// taxonomy's ValidationErrors bucket when it is not already one, so
// callers only ever need to branch on the two exported types.
func toValidationErrors(err error) error {
	if _, ok := err.(*shared.ValidationErrors); ok {
		return err
	}
	errs := shared.NewValidationErrors()
	errs.Add("payload", "%s", err.Error())
	return errs.AsError()
}
