package milp

import (
	"context"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/andrescamacho/mission-optimizer-core/internal/domain/optimization"
	"github.com/andrescamacho/mission-optimizer-core/internal/domain/shared"
)

// Config controls solver backend selection and stopping criteria.
type Config struct {
	// Backends lists solver names to try via mip.NewSolver, in order. The
	// first one that constructs successfully is used.
	Backends []string
	// MaxDuration bounds wall-clock solve time; the solver returns its best
	// incumbent when it elapses without reaching optimality.
	MaxDuration time.Duration
	// MIPGapRelative stops the search once the relative optimality gap
	// drops below this fraction.
	MIPGapRelative float64
	Verbosity      mip.Verbosity
}

// DefaultConfig mirrors the solver defaults used against the reference
// fixtures: a single open-source backend, a bounded duration, and a loose
// enough gap that small instances resolve to optimality quickly.
func DefaultConfig() Config {
	return Config{
		Backends:       []string{"highs"},
		MaxDuration:    30 * time.Second,
		MIPGapRelative: 0.001,
		Verbosity:      mip.Off,
	}
}

// Engine implements optimization.Engine against github.com/nextmv-io/sdk/mip.
type Engine struct {
	cfg Config
}

// NewEngine builds an Engine with the given solver configuration.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Solve runs the configured backend(s) against the built model, returning
// the first backend that produces a usable solver instance. Any backend
// construction or solve failure is wrapped as a *shared.SolverError so
// callers can distinguish it from a payload validation failure.
func (e *Engine) Solve(ctx context.Context, model optimization.Model) (optimization.Solution, error) {
	bm, ok := model.(*builtModel)
	if !ok {
		return nil, &shared.SolverError{Stage: "solve", Err: errInvalidModel}
	}

	opts := mip.NewSolveOptions()
	if err := opts.SetMaximumDuration(e.cfg.MaxDuration); err != nil {
		return nil, &shared.SolverError{Stage: "configure", Err: err}
	}
	if err := opts.SetMIPGapRelative(e.cfg.MIPGapRelative); err != nil {
		return nil, &shared.SolverError{Stage: "configure", Err: err}
	}
	opts.SetVerbosity(e.cfg.Verbosity)

	var lastErr error
	for _, backend := range e.cfg.Backends {
		solver, err := mip.NewSolver(backend, bm.mip)
		if err != nil {
			lastErr = err
			continue
		}
		solution, err := solver.Solve(opts)
		if err != nil {
			lastErr = err
			continue
		}
		return solution, nil
	}

	if lastErr == nil {
		lastErr = errNoBackend
	}
	return nil, &shared.SolverError{Stage: "solve", Err: lastErr}
}

// CheckBackend verifies that at least one configured backend can be
// constructed by github.com/nextmv-io/sdk/mip, against a trivial empty
// model. It does not solve anything; it only confirms the backend binary or
// library the config names is actually reachable. Callers run this once at
// process startup so a missing solver is a startup failure rather than
// something discovered only when the first job arrives.
func (e *Engine) CheckBackend() error {
	probe := mip.NewModel()

	var lastErr error
	for _, backend := range e.cfg.Backends {
		if _, err := mip.NewSolver(backend, probe); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	if lastErr == nil {
		lastErr = errNoBackend
	}
	return &shared.SolverError{Stage: "startup", Err: lastErr}
}
