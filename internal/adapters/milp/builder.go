package milp

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/andrescamacho/mission-optimizer-core/internal/domain/missiondata"
	"github.com/andrescamacho/mission-optimizer-core/internal/domain/optimization"
)

// Build constructs the mission-supply MILP from normalized data: the
// decision variables and constraints of the data model's §4.2, indexed by
// plain Go maps keyed by small comparable structs rather than
// model.MultiMap, since our indices are multi-dimensional tuples rather
// than single entities with an ID() method.
func (e *Engine) Build(data *missiondata.Data) (optimization.Model, error) {
	m := mip.NewModel()
	weeks := missiondata.SortedWeeks(data.Weeks)
	firstWeek := missiondata.FirstWeek(data.Weeks)
	prevWeek := missiondata.PrevWeekIndex(data.Weeks)

	bm := &builtModel{
		mip:        m,
		data:       data,
		weeks:      weeks,
		firstWeek:  firstWeek,
		prevWeek:   prevWeek,
		p:          make(map[materialMethodWeekKey]mip.Float),
		q:          make(map[methodWeekKey]mip.Float),
		y:          make(map[methodWeekKey]mip.Bool),
		oProd:      make(map[outputWeekKey]mip.Float),
		oInv:       make(map[outputWeekKey]mip.Float),
		mInv:       make(map[materialWeekKey]mip.Float),
		makeSub:    make(map[substituteWeekKey]mip.Float),
		subInv:     make(map[substituteWeekKey]mip.Float),
		subUsedFor: make(map[substituteItemWeekKey]mip.Float),
		carryUsed:  make(map[itemWeekKey]mip.Float),
		carryInv:   make(map[itemWeekKey]mip.Float),
		itemUsed:   make(map[itemWeekKey]mip.Float),
		itemShort:  make(map[itemWeekKey]mip.Float),
	}

	bm.createVariables()
	bm.addMethodAggregation(m)
	bm.addProductionYield(m)
	bm.addOutputBalance(m)
	bm.addMaterialBalance(m)
	bm.addSubstituteBalance(m)
	bm.addCarriedBalance(m)
	bm.addDemandDecomposition(m)
	bm.addCapacityAvailabilityLotSize(m)
	bm.addResourceEnvelopes(m)
	bm.addDeadlines(m)
	bm.addObjective(m)

	return bm, nil
}

func (bm *builtModel) createVariables() {
	data := bm.data
	m := bm.mip

	for _, mat := range data.Materials {
		for _, r := range data.Methods {
			for _, t := range bm.weeks {
				bm.p[materialMethodWeekKey{mat, r, t}] = m.NewFloat(0, noUpperBound)
			}
		}
	}
	for _, r := range data.Methods {
		for _, t := range bm.weeks {
			bm.q[methodWeekKey{r, t}] = m.NewFloat(0, noUpperBound)
			bm.y[methodWeekKey{r, t}] = m.NewBool()
		}
	}
	for _, o := range data.Outputs {
		for _, t := range bm.weeks {
			bm.oProd[outputWeekKey{o, t}] = m.NewFloat(0, noUpperBound)
			ub := noUpperBound
			if cap, ok := data.OutputCapacity[o]; ok {
				ub = cap
			}
			bm.oInv[outputWeekKey{o, t}] = m.NewFloat(0, ub)
		}
	}
	for _, mat := range data.Materials {
		for _, t := range bm.weeks {
			ub := noUpperBound
			if cap, ok := data.InputCapacity[mat]; ok {
				ub = cap
			}
			bm.mInv[materialWeekKey{mat, t}] = m.NewFloat(0, ub)
		}
	}
	for _, s := range data.Substitutes {
		for _, t := range bm.weeks {
			bm.makeSub[substituteWeekKey{s, t}] = m.NewFloat(0, noUpperBound)
			bm.subInv[substituteWeekKey{s, t}] = m.NewFloat(0, noUpperBound)
		}
	}
	for _, s := range data.Substitutes {
		for _, k := range data.Items {
			ub := noUpperBound
			if !eligible(data, s, k) {
				// Ineligible assignments are pinned to zero at creation
				// instead of added as a separate "== 0" constraint per
				// item-substitute-week triple.
				ub = 0
			}
			for _, t := range bm.weeks {
				bm.subUsedFor[substituteItemWeekKey{s, k, t}] = m.NewFloat(0, ub)
			}
		}
	}
	for _, k := range data.Items {
		for _, t := range bm.weeks {
			bm.carryUsed[itemWeekKey{k, t}] = m.NewFloat(0, noUpperBound)
			bm.carryInv[itemWeekKey{k, t}] = m.NewFloat(0, noUpperBound)
			bm.itemUsed[itemWeekKey{k, t}] = m.NewFloat(0, noUpperBound)
			bm.itemShort[itemWeekKey{k, t}] = m.NewFloat(0, noUpperBound)
		}
	}
}

// addMethodAggregation: Q[r,t] = Σ_m P[m,r,t].
func (bm *builtModel) addMethodAggregation(m mip.Model) {
	for _, r := range bm.data.Methods {
		for _, t := range bm.weeks {
			c := m.NewConstraint(mip.Equal, 0.0)
			c.NewTerm(1, bm.q[methodWeekKey{r, t}])
			for _, mat := range bm.data.Materials {
				c.NewTerm(-1, bm.p[materialMethodWeekKey{mat, r, t}])
			}
		}
	}
}

// addProductionYield: Oprod[o,t] = Σ_{m,r} yields[(m,r,o)]·P[m,r,t].
func (bm *builtModel) addProductionYield(m mip.Model) {
	for _, o := range bm.data.Outputs {
		for _, t := range bm.weeks {
			c := m.NewConstraint(mip.Equal, 0.0)
			c.NewTerm(1, bm.oProd[outputWeekKey{o, t}])
			for _, mat := range bm.data.Materials {
				for _, r := range bm.data.Methods {
					y := bm.data.Yields[missiondata.MaterialMethodOutputKey{Material: mat, Method: r, Output: o}]
					if y == 0 {
						continue
					}
					c.NewTerm(-y, bm.p[materialMethodWeekKey{mat, r, t}])
				}
			}
		}
	}
}

// addOutputBalance: Oinv[o,t] = prev + Oprod[o,t] - Σ_s recipe[(s,o)]·make_sub[s,t],
// plus Oinv[o,t] <= output_capacity[o] when given (enforced via variable
// bound at creation).
func (bm *builtModel) addOutputBalance(m mip.Model) {
	for _, o := range bm.data.Outputs {
		for _, t := range bm.weeks {
			rhs := 0.0
			if t == bm.firstWeek {
				rhs = bm.data.InitialInventory.Outputs[o]
			}
			c := m.NewConstraint(mip.Equal, rhs)
			c.NewTerm(1, bm.oInv[outputWeekKey{o, t}])
			c.NewTerm(-1, bm.oProd[outputWeekKey{o, t}])
			for _, s := range bm.data.Substitutes {
				recipe := bm.data.SubstituteMakeRecipe[missiondata.SubstituteOutputKey{Substitute: s, Output: o}]
				if recipe == 0 {
					continue
				}
				c.NewTerm(recipe, bm.makeSub[substituteWeekKey{s, t}])
			}
			if t != bm.firstWeek {
				c.NewTerm(-1, bm.oInv[outputWeekKey{o, bm.prevWeek[t]}])
			}
		}
	}
}

// addMaterialBalance: Minv[m,t] = prev + CarriedWaste(m,t) + SubWaste(m,t) - Σ_r P[m,r,t],
// plus Minv[m,t] <= input_capacity[m] when given (variable bound).
func (bm *builtModel) addMaterialBalance(m mip.Model) {
	data := bm.data
	for _, mat := range data.Materials {
		for _, t := range bm.weeks {
			rhs := 0.0
			if t == bm.firstWeek {
				rhs = data.InitialInventory.Materials[mat]
			}
			c := m.NewConstraint(mip.Equal, rhs)
			c.NewTerm(1, bm.mInv[materialWeekKey{mat, t}])
			for _, r := range data.Methods {
				c.NewTerm(1, bm.p[materialMethodWeekKey{mat, r, t}])
			}

			for _, k := range data.Items {
				lifetime := data.ItemLifetime[k]
				waste := data.ItemWaste[missiondata.ItemMaterialKey{Item: k, Material: mat}]
				if waste == 0 {
					continue
				}
				for _, tau := range bm.weeks {
					if tau+lifetime == t {
						c.NewTerm(-waste, bm.carryUsed[itemWeekKey{k, tau}])
					}
				}
			}
			for _, s := range data.Substitutes {
				lifetime := data.SubstituteLifetime[s]
				waste := data.SubstituteWaste[missiondata.SubstituteMaterialKey{Substitute: s, Material: mat}]
				if waste == 0 {
					continue
				}
				for _, tau := range bm.weeks {
					if tau+lifetime == t {
						for _, k := range data.Items {
							c.NewTerm(-waste, bm.subUsedFor[substituteItemWeekKey{s, k, tau}])
						}
					}
				}
			}

			if t != bm.firstWeek {
				c.NewTerm(-1, bm.mInv[materialWeekKey{mat, bm.prevWeek[t]}])
			}
		}
	}
}

// addSubstituteBalance: sub_inv[s,t] = prev + make_sub[s,t] - Σ_k sub_used_for[s,k,t].
func (bm *builtModel) addSubstituteBalance(m mip.Model) {
	data := bm.data
	for _, s := range data.Substitutes {
		for _, t := range bm.weeks {
			rhs := 0.0
			if t == bm.firstWeek {
				rhs = data.InitialInventory.Substitutes[s]
			}
			c := m.NewConstraint(mip.Equal, rhs)
			c.NewTerm(1, bm.subInv[substituteWeekKey{s, t}])
			c.NewTerm(-1, bm.makeSub[substituteWeekKey{s, t}])
			for _, k := range data.Items {
				c.NewTerm(1, bm.subUsedFor[substituteItemWeekKey{s, k, t}])
			}
			if t != bm.firstWeek {
				c.NewTerm(-1, bm.subInv[substituteWeekKey{s, bm.prevWeek[t]}])
			}
		}
	}
}

// addCarriedBalance: carried_inv[k,t] = prev - carried_used[k,t].
func (bm *builtModel) addCarriedBalance(m mip.Model) {
	data := bm.data
	for _, k := range data.Items {
		for _, t := range bm.weeks {
			rhs := 0.0
			if t == bm.firstWeek {
				rhs = data.InitialInventory.Items[k]
			}
			c := m.NewConstraint(mip.Equal, rhs)
			c.NewTerm(1, bm.carryInv[itemWeekKey{k, t}])
			c.NewTerm(1, bm.carryUsed[itemWeekKey{k, t}])
			if t != bm.firstWeek {
				c.NewTerm(-1, bm.carryInv[itemWeekKey{k, bm.prevWeek[t]}])
			}
		}
	}
}

// addDemandDecomposition: item_used[k,t] = carried_used[k,t] + Σ_s sub_used_for[s,k,t],
// and item_used[k,t] + item_short[k,t] = item_demands[(k,t)].
func (bm *builtModel) addDemandDecomposition(m mip.Model) {
	data := bm.data
	for _, k := range data.Items {
		for _, t := range bm.weeks {
			c1 := m.NewConstraint(mip.Equal, 0.0)
			c1.NewTerm(1, bm.itemUsed[itemWeekKey{k, t}])
			c1.NewTerm(-1, bm.carryUsed[itemWeekKey{k, t}])
			for _, s := range data.Substitutes {
				c1.NewTerm(-1, bm.subUsedFor[substituteItemWeekKey{s, k, t}])
			}

			demand := data.ItemDemands[missiondata.ItemWeekKey{Item: k, Week: t}]
			c2 := m.NewConstraint(mip.Equal, demand)
			c2.NewTerm(1, bm.itemUsed[itemWeekKey{k, t}])
			c2.NewTerm(1, bm.itemShort[itemWeekKey{k, t}])
		}
	}
}

// addCapacityAvailabilityLotSize: Q[r,t] <= max_capacity[(r,t)]·y[r,t];
// y[r,t] = 0 if availability[(r,t)] = 0; min_lot_size[r]·y[r,t] <= Q[r,t].
func (bm *builtModel) addCapacityAvailabilityLotSize(m mip.Model) {
	data := bm.data
	for _, r := range data.Methods {
		for _, t := range bm.weeks {
			rmax := data.MaxCapacity[missiondata.MethodWeekKey{Method: r, Week: t}]
			cap := m.NewConstraint(mip.LessThanOrEqual, 0.0)
			cap.NewTerm(1, bm.q[methodWeekKey{r, t}])
			cap.NewTerm(-rmax, bm.y[methodWeekKey{r, t}])

			if avail, ok := data.Availability[missiondata.MethodWeekKey{Method: r, Week: t}]; ok && avail == 0 {
				lock := m.NewConstraint(mip.Equal, 0.0)
				lock.NewTerm(1, bm.y[methodWeekKey{r, t}])
			}

			if minLot := data.MinLotSize[r]; minLot > 0 {
				lot := m.NewConstraint(mip.LessThanOrEqual, 0.0)
				lot.NewTerm(minLot, bm.y[methodWeekKey{r, t}])
				lot.NewTerm(-1, bm.q[methodWeekKey{r, t}])
			}
		}
	}
}

// addResourceEnvelopes: per week, crew and energy consumed by recycling and
// substitute assembly must stay within the weekly budget (absent budgets
// mean unconstrained, per the data model's default of +infinity).
func (bm *builtModel) addResourceEnvelopes(m mip.Model) {
	data := bm.data
	for _, t := range bm.weeks {
		if budget, ok := data.CrewAvailable[t]; ok {
			c := m.NewConstraint(mip.LessThanOrEqual, budget)
			for _, r := range data.Methods {
				if cost := data.CrewCost[r]; cost != 0 {
					c.NewTerm(cost, bm.q[methodWeekKey{r, t}])
				}
			}
			for _, s := range data.Substitutes {
				if cost := data.SubstituteAssemblyCrew[s]; cost != 0 {
					c.NewTerm(cost, bm.makeSub[substituteWeekKey{s, t}])
				}
			}
		}
		if budget, ok := data.EnergyAvailable[t]; ok {
			c := m.NewConstraint(mip.LessThanOrEqual, budget)
			for _, r := range data.Methods {
				if cost := data.EnergyCost[r]; cost != 0 {
					c.NewTerm(cost, bm.q[methodWeekKey{r, t}])
				}
			}
			for _, s := range data.Substitutes {
				if cost := data.SubstituteAssemblyEnergy[s]; cost != 0 {
					c.NewTerm(cost, bm.makeSub[substituteWeekKey{s, t}])
				}
			}
		}
	}
}

// addDeadlines: for each {k,t,a}, Σ_{τ<=t} item_used[k,τ] >= a.
func (bm *builtModel) addDeadlines(m mip.Model) {
	for _, dl := range bm.data.Deadlines {
		c := m.NewConstraint(mip.GreaterThanOrEqual, dl.Amount)
		for _, tau := range bm.weeks {
			if tau <= dl.Week {
				c.NewTerm(1, bm.itemUsed[itemWeekKey{dl.Item, tau}])
			}
		}
	}
}

// addObjective wires the weighted multi-objective in §4.2. Signs must match
// exactly: carry is additive but weights.Carry is conventionally <= 0, and
// shortage is explicitly subtracted with a large positive weight.
func (bm *builtModel) addObjective(m mip.Model) {
	data := bm.data
	w := data.Weights
	obj := m.Objective()
	obj.SetMaximize()

	for _, o := range data.Outputs {
		for _, t := range bm.weeks {
			v := bm.oProd[outputWeekKey{o, t}]
			if w.Mass != 0 {
				obj.NewTerm(w.Mass, v)
			}
			if value := data.OutputValues[o]; w.Value != 0 && value != 0 {
				obj.NewTerm(w.Value*value, v)
			}
		}
	}
	for _, r := range data.Methods {
		for _, t := range bm.weeks {
			v := bm.q[methodWeekKey{r, t}]
			if cost := data.CrewCost[r]; w.Crew != 0 && cost != 0 {
				obj.NewTerm(-w.Crew*cost, v)
			}
			if cost := data.EnergyCost[r]; w.Energy != 0 && cost != 0 {
				obj.NewTerm(-w.Energy*cost, v)
			}
			if cost := data.RiskCost[r]; w.Risk != 0 && cost != 0 {
				obj.NewTerm(-w.Risk*cost, v)
			}
		}
	}
	for _, s := range data.Substitutes {
		for _, t := range bm.weeks {
			if value := data.SubstituteValues[s]; w.Make != 0 && value != 0 {
				obj.NewTerm(w.Make*value, bm.makeSub[substituteWeekKey{s, t}])
			}
		}
	}
	for _, k := range data.Items {
		for _, t := range bm.weeks {
			if mass := data.ItemMass[k]; w.Carry != 0 && mass != 0 {
				obj.NewTerm(w.Carry*mass, bm.carryUsed[itemWeekKey{k, t}])
			}
			if w.Shortage != 0 {
				obj.NewTerm(-w.Shortage, bm.itemShort[itemWeekKey{k, t}])
			}
		}
	}
}
