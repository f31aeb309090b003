// Package milp implements the optimization.Engine port on top of
// github.com/nextmv-io/sdk/mip: it builds the mission-supply MILP, solves it
// with an available backend, and extracts the canonical result document.
package milp

import (
	"math"

	"github.com/nextmv-io/sdk/mip"

	"github.com/andrescamacho/mission-optimizer-core/internal/domain/missiondata"
)

// noUpperBound stands in for "+infinity" on a continuous variable; the
// data model's NonNegativeReals domains have no natural finite bound.
const noUpperBound = math.MaxFloat64

// builtModel is the concrete Model this package hands back through the
// optimization.Engine port. It is rebuilt from scratch for every job and
// never shared across requests.
type builtModel struct {
	mip       mip.Model
	data      *missiondata.Data
	weeks     []int
	firstWeek int
	prevWeek  map[int]int

	p          map[materialMethodWeekKey]mip.Float
	q          map[methodWeekKey]mip.Float
	y          map[methodWeekKey]mip.Bool
	oProd      map[outputWeekKey]mip.Float
	oInv       map[outputWeekKey]mip.Float
	mInv       map[materialWeekKey]mip.Float
	makeSub    map[substituteWeekKey]mip.Float
	subInv     map[substituteWeekKey]mip.Float
	subUsedFor map[substituteItemWeekKey]mip.Float
	carryUsed  map[itemWeekKey]mip.Float
	carryInv   map[itemWeekKey]mip.Float
	itemUsed   map[itemWeekKey]mip.Float
	itemShort  map[itemWeekKey]mip.Float
}

// eligible reports whether substitute s may stand in for item k, per
// substitutes_can_replace.
func eligible(data *missiondata.Data, substitute, item string) bool {
	for _, s := range data.SubstitutesCanReplace[item] {
		if s == substitute {
			return true
		}
	}
	return false
}
