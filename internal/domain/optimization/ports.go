// Package optimization defines the ports the MILP adapter implements: build
// a model from normalized mission data, solve it, and extract a canonical
// result document. The application layer depends only on this interface,
// never on the concrete solver package, the way the reference
// architecture's domain layer depends on its own adapter ports.
package optimization

import (
	"context"

	"github.com/andrescamacho/mission-optimizer-core/internal/domain/missiondata"
)

// Model is the built MILP, opaque outside the adapter that constructed it.
type Model interface{}

// Solution is a solved Model, opaque outside the adapter that produced it.
type Solution interface{}

// Engine builds, solves, and extracts results for one mission-supply job.
// A single request's Model and Solution never outlive the call that built
// them; nothing here is safe to share across requests.
type Engine interface {
	Build(data *missiondata.Data) (Model, error)
	Solve(ctx context.Context, model Model) (Solution, error)
	Extract(data *missiondata.Data, model Model, solution Solution) (*Result, error)
}
