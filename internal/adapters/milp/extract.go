package milp

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/andrescamacho/mission-optimizer-core/internal/domain/missiondata"
	"github.com/andrescamacho/mission-optimizer-core/internal/domain/optimization"
)

// Extract turns a solved model into the canonical result document. Every
// variable read goes through sv, which returns 0 for a variable with no
// assigned value instead of panicking, mirroring the safe-value accessor
// used when the solver stops short of a full solution.
func (e *Engine) Extract(data *missiondata.Data, model optimization.Model, solution optimization.Solution) (*optimization.Result, error) {
	bm, ok := model.(*builtModel)
	if !ok {
		return nil, errInvalidModel
	}
	sol, ok := solution.(mip.Solution)
	if !ok {
		return nil, errInvalidModel
	}

	status := extractStatus(sol)
	result := &optimization.Result{SolverStatus: status}
	if !sol.HasValues() {
		return result, nil
	}

	sv := func(v mip.Float) float64 { return sol.Value(v) }
	sb := func(v mip.Bool) int {
		if sol.Value(v) != 0 {
			return 1
		}
		return 0
	}

	result.Schedule = make([]optimization.WeekSchedule, 0, len(bm.weeks))
	for _, t := range bm.weeks {
		methods := make(map[string]optimization.MethodWeekResult, len(data.Methods))
		for _, r := range data.Methods {
			q := sv(bm.q[methodWeekKey{r, t}])
			running := sb(bm.y[methodWeekKey{r, t}])
			byMaterial := make(map[string]float64, len(data.Materials))
			for _, mat := range data.Materials {
				byMaterial[mat] = sv(bm.p[materialMethodWeekKey{mat, r, t}])
			}
			methods[r] = optimization.MethodWeekResult{
				ProcessedKg: q,
				IsRunning:   running,
				ByMaterial:  byMaterial,
			}
		}
		result.Schedule = append(result.Schedule, optimization.WeekSchedule{Week: t, Methods: methods})
	}

	var totalOutputProduced float64
	result.Outputs = make([]optimization.OutputResult, 0, len(data.Outputs))
	for _, o := range data.Outputs {
		weeks := make([]optimization.OutputWeek, 0, len(bm.weeks))
		for _, t := range bm.weeks {
			produced := sv(bm.oProd[outputWeekKey{o, t}])
			totalOutputProduced += produced
			weeks = append(weeks, optimization.OutputWeek{
				Week:        t,
				ProducedKg:  produced,
				InventoryKg: sv(bm.oInv[outputWeekKey{o, t}]),
			})
		}
		result.Outputs = append(result.Outputs, optimization.OutputResult{Output: o, Weeks: weeks})
	}

	var totalSubstitutesMade float64
	substituteBreakdown := make(map[string]float64, len(data.Substitutes))
	result.Substitutes = make([]optimization.SubstituteResult, 0, len(data.Substitutes))
	for _, s := range data.Substitutes {
		weeks := make([]optimization.SubstituteWeek, 0, len(bm.weeks))
		for _, t := range bm.weeks {
			made := sv(bm.makeSub[substituteWeekKey{s, t}])
			totalSubstitutesMade += made
			substituteBreakdown[s] += made
			usedFor := make(map[string]float64, len(data.Items))
			for _, k := range data.Items {
				usedFor[k] = sv(bm.subUsedFor[substituteItemWeekKey{s, k, t}])
			}
			weeks = append(weeks, optimization.SubstituteWeek{
				Week:      t,
				Made:      made,
				Inventory: sv(bm.subInv[substituteWeekKey{s, t}]),
				UsedFor:   usedFor,
			})
		}
		result.Substitutes = append(result.Substitutes, optimization.SubstituteResult{Substitute: s, Weeks: weeks})
	}

	var totalShortage, totalInitialCarriage, totalFinalCarriage, totalCarriedLoss float64
	carriedLossByItem := make(map[string]optimization.CarriedWeightLoss, len(data.Items))
	result.Items = make([]optimization.ItemResult, 0, len(data.Items))
	lastWeek := bm.weeks[len(bm.weeks)-1]
	for _, k := range data.Items {
		weeks := make([]optimization.ItemWeek, 0, len(bm.weeks))
		var unitsUsed float64
		for _, t := range bm.weeks {
			used := sv(bm.itemUsed[itemWeekKey{k, t}])
			carried := sv(bm.carryUsed[itemWeekKey{k, t}])
			short := sv(bm.itemShort[itemWeekKey{k, t}])
			unitsUsed += carried
			totalShortage += short
			weeks = append(weeks, optimization.ItemWeek{
				Week:        t,
				UsedTotal:   used,
				UsedCarried: carried,
				Shortage:    short,
			})
		}
		result.Items = append(result.Items, optimization.ItemResult{Item: k, Weeks: weeks})

		initialUnits := data.InitialInventory.Items[k]
		finalUnits := sv(bm.carryInv[itemWeekKey{k, lastWeek}])
		massPerUnit := data.ItemMass[k]
		initialWeight := initialUnits * massPerUnit
		finalWeight := finalUnits * massPerUnit
		weightLoss := initialWeight - finalWeight

		totalInitialCarriage += initialWeight
		totalFinalCarriage += finalWeight
		totalCarriedLoss += weightLoss

		carriedLossByItem[k] = optimization.CarriedWeightLoss{
			InitialUnits:    initialUnits,
			UnitsUsed:       unitsUsed,
			FinalUnits:      finalUnits,
			MassPerUnit:     massPerUnit,
			InitialWeight:   initialWeight,
			FinalWeight:     finalWeight,
			TotalWeightLoss: weightLoss,
		}
	}

	var totalProcessed float64
	for _, r := range data.Methods {
		for _, t := range bm.weeks {
			totalProcessed += sv(bm.q[methodWeekKey{r, t}])
		}
	}

	result.Summary = optimization.Summary{
		ObjectiveValue:             objectiveValue(sol),
		TotalProcessedKg:           totalProcessed,
		TotalOutputProducedKg:      totalOutputProduced,
		TotalSubstitutesMade:       totalSubstitutesMade,
		SubstituteBreakdown:        substituteBreakdown,
		TotalInitialCarriageWeight: totalInitialCarriage,
		TotalFinalCarriageWeight:   totalFinalCarriage,
		TotalCarriedWeightLoss:     totalCarriedLoss,
		CarriedWeightLossByItem:    carriedLossByItem,
	}

	return result, nil
}

func objectiveValue(sol mip.Solution) float64 {
	if !sol.HasValues() {
		return 0
	}
	return sol.ObjectiveValue()
}

func extractStatus(sol mip.Solution) optimization.SolverStatus {
	if !sol.HasValues() {
		return optimization.SolverStatus{Status: "error", TerminationCondition: "infeasible"}
	}
	if sol.IsOptimal() {
		return optimization.SolverStatus{Status: "ok", TerminationCondition: "optimal"}
	}
	return optimization.SolverStatus{Status: "ok", TerminationCondition: "feasible"}
}
