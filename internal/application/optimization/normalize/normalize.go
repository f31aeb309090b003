// Package normalize converts a wire-format job payload (JSON decoded into a
// generic interface{} tree, with stringified tuple keys and possibly
// stringified week indices) into the strictly-typed missiondata.Data
// record the builder consumes.
package normalize

import (
	"fmt"

	"github.com/andrescamacho/mission-optimizer-core/internal/domain/missiondata"
	"github.com/andrescamacho/mission-optimizer-core/pkg/utils"
)

// Normalize parses raw (the decoded "data" object of a job request) into a
// fully-defaulted Data record. Every nested sub-map that the builder
// expects to index unconditionally (initial_inventory.*,
// substitute_assembly_*, weights, substitutes_can_replace) is guaranteed to
// exist, defaulting to empty. A malformed tuple key or an unparseable
// numeric component is reported as an error; validation of referential
// integrity happens separately in the validate package.
func Normalize(raw map[string]interface{}) (*missiondata.Data, error) {
	inv := utils.AsMap(raw["initial_inventory"])

	weeks, err := parseWeeks(raw["weeks"])
	if err != nil {
		return nil, fmt.Errorf("weeks: %w", err)
	}

	data := &missiondata.Data{
		Materials:   utils.AsStringSlice(raw["materials"]),
		Methods:     utils.AsStringSlice(raw["methods"]),
		Outputs:     utils.AsStringSlice(raw["outputs"]),
		Items:       utils.AsStringSlice(raw["items"]),
		Substitutes: utils.AsStringSlice(raw["substitutes"]),
		Weeks:       weeks,

		InitialInventory: missiondata.InitialInventory{
			Materials:   utils.AsFloatMap(inv["materials"]),
			Outputs:     utils.AsFloatMap(inv["outputs"]),
			Items:       utils.AsFloatMap(inv["items"]),
			Substitutes: utils.AsFloatMap(inv["substitutes"]),
		},

		ItemMass:           utils.AsFloatMap(raw["item_mass"]),
		ItemLifetime:       utils.AsIntMap(raw["item_lifetime"]),
		SubstituteLifetime: utils.AsIntMap(raw["substitute_lifetime"]),

		MinLotSize: utils.AsFloatMap(raw["min_lot_size"]),

		CrewCost:   utils.AsFloatMap(raw["crew_cost"]),
		EnergyCost: utils.AsFloatMap(raw["energy_cost"]),
		RiskCost:   utils.AsFloatMap(raw["risk_cost"]),

		OutputCapacity: utils.AsFloatMap(raw["output_capacity"]),
		InputCapacity:  utils.AsFloatMap(raw["input_capacity"]),

		OutputValues:     utils.AsFloatMap(raw["output_values"]),
		SubstituteValues: utils.AsFloatMap(raw["substitute_values"]),

		SubstituteAssemblyCrew:   utils.AsFloatMap(raw["substitute_assembly_crew"]),
		SubstituteAssemblyEnergy: utils.AsFloatMap(raw["substitute_assembly_energy"]),

		SubstitutesCanReplace: utils.AsStringSliceMap(raw["substitutes_can_replace"]),

		Weights: parseWeights(utils.AsMap(raw["weights"])),
	}

	if data.CrewAvailable, err = parseWeekKeyedFloatMap(raw["crew_available"]); err != nil {
		return nil, fmt.Errorf("crew_available: %w", err)
	}
	if data.EnergyAvailable, err = parseWeekKeyedFloatMap(raw["energy_available"]); err != nil {
		return nil, fmt.Errorf("energy_available: %w", err)
	}

	if data.ItemWaste, err = parseItemMaterialMap(raw["item_waste"]); err != nil {
		return nil, fmt.Errorf("item_waste: %w", err)
	}
	if data.SubstituteWaste, err = parseSubstituteMaterialMap(raw["substitute_waste"]); err != nil {
		return nil, fmt.Errorf("substitute_waste: %w", err)
	}
	if data.ItemDemands, err = parseItemWeekMap(raw["item_demands"]); err != nil {
		return nil, fmt.Errorf("item_demands: %w", err)
	}
	if data.Yields, err = parseYieldsMap(raw["yields"]); err != nil {
		return nil, fmt.Errorf("yields: %w", err)
	}
	if data.MaxCapacity, err = parseMethodWeekMap(raw["max_capacity"]); err != nil {
		return nil, fmt.Errorf("max_capacity: %w", err)
	}
	if data.Availability, err = parseMethodWeekMap(raw["availability"]); err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	if data.SubstituteMakeRecipe, err = parseSubstituteOutputMap(raw["substitute_make_recipe"]); err != nil {
		return nil, fmt.Errorf("substitute_make_recipe: %w", err)
	}

	data.Deadlines = parseDeadlines(utils.AsSlice(raw["deadlines"]))

	return data, nil
}

func parseWeights(m map[string]interface{}) missiondata.Weights {
	get := func(key string) float64 {
		f, _ := utils.AsFloat(m[key])
		return f
	}
	w := missiondata.Weights{
		Mass:     get("mass"),
		Value:    get("value"),
		Crew:     get("crew"),
		Energy:   get("energy"),
		Risk:     get("risk"),
		Make:     get("make"),
		Carry:    get("carry"),
		Shortage: get("shortage"),
	}
	return w
}

// parseWeeks parses the top-level weeks list, rejecting any entry that is
// not an integer or a digit string rather than silently dropping it; a
// missing week index would otherwise disappear before validate.Validate
// ever gets a chance to report it.
func parseWeeks(raw interface{}) ([]int, error) {
	entries := utils.AsSlice(raw)
	out := make([]int, 0, len(entries))
	for i, e := range entries {
		week, ok := utils.AsInt(e)
		if !ok {
			return nil, fmt.Errorf("entry %d (%v) is not an integer week", i, e)
		}
		out = append(out, week)
	}
	return out, nil
}

func parseDeadlines(raw []interface{}) []missiondata.Deadline {
	deadlines := make([]missiondata.Deadline, 0, len(raw))
	for _, entry := range raw {
		m := utils.AsMap(entry)
		item, ok := utils.AsString(m["item"])
		if !ok {
			continue
		}
		week, ok := utils.AsInt(m["week"])
		if !ok {
			continue
		}
		amount, _ := utils.AsFloat(m["amount"])
		deadlines = append(deadlines, missiondata.Deadline{Item: item, Week: week, Amount: amount})
	}
	return deadlines
}

// parseWeekKeyedFloatMap parses crew_available/energy_available, whose keys
// are week indices that may arrive as digit strings.
func parseWeekKeyedFloatMap(raw interface{}) (map[int]float64, error) {
	m := utils.AsMap(raw)
	out := make(map[int]float64, len(m))
	for k, v := range m {
		week, ok := utils.ParseIntegerKey(k)
		if !ok {
			return nil, fmt.Errorf("key %q is not an integer week", k)
		}
		f, _ := utils.AsFloat(v)
		out[week] = f
	}
	return out, nil
}

func parseItemMaterialMap(raw interface{}) (map[missiondata.ItemMaterialKey]float64, error) {
	m := utils.AsMap(raw)
	out := make(map[missiondata.ItemMaterialKey]float64, len(m))
	for k, v := range m {
		comps, err := utils.ParseTupleKey(k)
		if err != nil {
			return nil, err
		}
		if len(comps) != 2 {
			return nil, fmt.Errorf("expected 2-tuple key, got %q", k)
		}
		f, _ := utils.AsFloat(v)
		out[missiondata.ItemMaterialKey{Item: comps[0].String, Material: comps[1].String}] = f
	}
	return out, nil
}

func parseSubstituteMaterialMap(raw interface{}) (map[missiondata.SubstituteMaterialKey]float64, error) {
	m := utils.AsMap(raw)
	out := make(map[missiondata.SubstituteMaterialKey]float64, len(m))
	for k, v := range m {
		comps, err := utils.ParseTupleKey(k)
		if err != nil {
			return nil, err
		}
		if len(comps) != 2 {
			return nil, fmt.Errorf("expected 2-tuple key, got %q", k)
		}
		f, _ := utils.AsFloat(v)
		out[missiondata.SubstituteMaterialKey{Substitute: comps[0].String, Material: comps[1].String}] = f
	}
	return out, nil
}

func parseItemWeekMap(raw interface{}) (map[missiondata.ItemWeekKey]float64, error) {
	m := utils.AsMap(raw)
	out := make(map[missiondata.ItemWeekKey]float64, len(m))
	for k, v := range m {
		comps, err := utils.ParseTupleKey(k)
		if err != nil {
			return nil, err
		}
		if len(comps) != 2 || !comps[1].IsInt {
			return nil, fmt.Errorf("expected (item, week) key, got %q", k)
		}
		f, _ := utils.AsFloat(v)
		out[missiondata.ItemWeekKey{Item: comps[0].String, Week: comps[1].Int}] = f
	}
	return out, nil
}

func parseYieldsMap(raw interface{}) (map[missiondata.MaterialMethodOutputKey]float64, error) {
	m := utils.AsMap(raw)
	out := make(map[missiondata.MaterialMethodOutputKey]float64, len(m))
	for k, v := range m {
		comps, err := utils.ParseTupleKey(k)
		if err != nil {
			return nil, err
		}
		if len(comps) != 3 {
			return nil, fmt.Errorf("expected (material, method, output) key, got %q", k)
		}
		f, _ := utils.AsFloat(v)
		out[missiondata.MaterialMethodOutputKey{
			Material: comps[0].String,
			Method:   comps[1].String,
			Output:   comps[2].String,
		}] = f
	}
	return out, nil
}

func parseMethodWeekMap(raw interface{}) (map[missiondata.MethodWeekKey]float64, error) {
	m := utils.AsMap(raw)
	out := make(map[missiondata.MethodWeekKey]float64, len(m))
	for k, v := range m {
		comps, err := utils.ParseTupleKey(k)
		if err != nil {
			return nil, err
		}
		if len(comps) != 2 || !comps[1].IsInt {
			return nil, fmt.Errorf("expected (method, week) key, got %q", k)
		}
		f, _ := utils.AsFloat(v)
		out[missiondata.MethodWeekKey{Method: comps[0].String, Week: comps[1].Int}] = f
	}
	return out, nil
}

func parseSubstituteOutputMap(raw interface{}) (map[missiondata.SubstituteOutputKey]float64, error) {
	m := utils.AsMap(raw)
	out := make(map[missiondata.SubstituteOutputKey]float64, len(m))
	for k, v := range m {
		comps, err := utils.ParseTupleKey(k)
		if err != nil {
			return nil, err
		}
		if len(comps) != 2 {
			return nil, fmt.Errorf("expected (substitute, output) key, got %q", k)
		}
		f, _ := utils.AsFloat(v)
		out[missiondata.SubstituteOutputKey{Substitute: comps[0].String, Output: comps[1].String}] = f
	}
	return out, nil
}
